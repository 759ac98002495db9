package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/hollowgrove/marcher/engine/core"
)

// VulkanBuffer is a host-visible buffer kept persistently mapped. Used for
// the per-frame scene uniform blocks, so writes only happen after the owning
// frame slot's fence has signaled.
type VulkanBuffer struct {
	Handle vk.Buffer
	Memory vk.DeviceMemory
	Size   vk.DeviceSize
	Mapped unsafe.Pointer
}

func UniformBufferCreate(context *VulkanContext, size uint64) (*VulkanBuffer, error) {
	buffer := &VulkanBuffer{
		Size: vk.DeviceSize(size),
	}

	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        buffer.Size,
		Usage:       vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit),
		SharingMode: vk.SharingModeExclusive,
	}

	var pBuffer vk.Buffer
	if res := vk.CreateBuffer(context.Device.LogicalDevice, &bufferCreateInfo, context.Allocator, &pBuffer); res != vk.Success {
		return nil, vkError("vkCreateBuffer", res)
	}
	buffer.Handle = pBuffer

	var memoryRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(context.Device.LogicalDevice, buffer.Handle, &memoryRequirements)
	memoryRequirements.Deref()

	memoryIndex := context.FindMemoryIndex(
		memoryRequirements.MemoryTypeBits,
		uint32(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if memoryIndex == -1 {
		buffer.Destroy(context)
		return nil, fmt.Errorf("no host-visible coherent memory type for uniform buffer")
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memoryRequirements.Size,
		MemoryTypeIndex: uint32(memoryIndex),
	}
	var pMemory vk.DeviceMemory
	if res := vk.AllocateMemory(context.Device.LogicalDevice, &allocateInfo, context.Allocator, &pMemory); res != vk.Success {
		buffer.Destroy(context)
		return nil, vkError("vkAllocateMemory", res)
	}
	buffer.Memory = pMemory

	if res := vk.BindBufferMemory(context.Device.LogicalDevice, buffer.Handle, buffer.Memory, 0); res != vk.Success {
		buffer.Destroy(context)
		return nil, vkError("vkBindBufferMemory", res)
	}

	if res := vk.MapMemory(context.Device.LogicalDevice, buffer.Memory, 0, buffer.Size, 0, &buffer.Mapped); res != vk.Success {
		buffer.Destroy(context)
		return nil, vkError("vkMapMemory", res)
	}

	return buffer, nil
}

// Upload copies data into the mapped buffer. The memory is host coherent,
// so no explicit flush is needed.
func (vb *VulkanBuffer) Upload(data []byte) {
	if vb.Mapped == nil {
		core.LogError("upload to an unmapped buffer")
		return
	}
	if n := vk.Memcopy(vb.Mapped, data); n != len(data) {
		core.LogWarn("short uniform buffer copy: %d of %d bytes", n, len(data))
	}
}

func (vb *VulkanBuffer) Destroy(context *VulkanContext) {
	if vb.Mapped != nil {
		vk.UnmapMemory(context.Device.LogicalDevice, vb.Memory)
		vb.Mapped = nil
	}
	if vb.Memory != vk.NullDeviceMemory {
		vk.FreeMemory(context.Device.LogicalDevice, vb.Memory, context.Allocator)
		vb.Memory = vk.NullDeviceMemory
	}
	if vb.Handle != vk.NullBuffer {
		vk.DestroyBuffer(context.Device.LogicalDevice, vb.Handle, context.Allocator)
		vb.Handle = vk.NullBuffer
	}
}
