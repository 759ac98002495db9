package vulkan

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"

	"github.com/hollowgrove/marcher/engine/core"
	"github.com/hollowgrove/marcher/engine/platform"
	"github.com/hollowgrove/marcher/engine/renderer"
	"github.com/hollowgrove/marcher/engine/renderer/shaders"
)

// Options configure the backend at construction time.
type Options struct {
	// Enable the Khronos validation layer when available. Missing layers
	// degrade to a warning instead of failing initialization.
	Validation     bool
	FramesInFlight int
	AcquireTimeout time.Duration
	Shader         shaders.Options
}

// VulkanRenderer is the device-facing backend. It owns every Vulkan object
// and implements renderer.RendererBackend.
type VulkanRenderer struct {
	platform *platform.Platform
	context  *VulkanContext
	compiler *shaders.Compiler
	options  Options

	pipeline *VulkanPipeline

	// Per swapchain image.
	graphicsCommandBuffers []*VulkanCommandBuffer
	imagesInFlight         []*VulkanFence

	// Per frame slot.
	imageAvailableSemaphores []vk.Semaphore
	queueCompleteSemaphores  []vk.Semaphore
	inFlightFences           []*VulkanFence
	sceneBuffers             []*VulkanBuffer
	descriptorSets           []vk.DescriptorSet

	descriptorPool vk.DescriptorPool

	currentFrame uint32
	imageIndex   uint32
	frameNumber  uint64

	validationActive bool
	shutdownDone     bool
}

var _ renderer.RendererBackend = (*VulkanRenderer)(nil)

func New(p *platform.Platform, options Options) *VulkanRenderer {
	if options.FramesInFlight < 1 {
		options.FramesInFlight = 2
	}
	if options.AcquireTimeout <= 0 {
		options.AcquireTimeout = 2 * time.Second
	}
	return &VulkanRenderer{
		platform: p,
		options:  options,
		compiler: shaders.NewCompiler(options.Shader),
		context: &VulkanContext{
			Device: &VulkanDevice{
				GraphicsQueueIndex: -1,
				PresentQueueIndex:  -1,
			},
		},
	}
}

// Compiler exposes the shader compiler, mainly for preloading and metrics.
func (vr *VulkanRenderer) Compiler() *shaders.Compiler {
	return vr.compiler
}

func (vr *VulkanRenderer) Initialize(appName string, appWidth, appHeight uint32) error {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return &core.DeviceInitError{Stage: "instance", Err: fmt.Errorf("vkGetInstanceProcAddr unavailable, no Vulkan loader found")}
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return &core.DeviceInitError{Stage: "instance", Err: err}
	}

	vr.context.FramebufferWidth = appWidth
	vr.context.FramebufferHeight = appHeight

	if err := vr.createInstance(appName); err != nil {
		return err
	}

	if vr.validationActive {
		if err := createDebugMessenger(vr.context); err != nil {
			return err
		}
	}

	core.LogDebug("Creating Vulkan surface...")
	surface, err := vr.platform.Window.CreateWindowSurface(vr.context.Instance, nil)
	if err != nil {
		return &core.DeviceInitError{Stage: "surface", Err: err}
	}
	vr.context.Surface = vk.SurfaceFromPointer(surface)
	core.LogDebug("Vulkan surface created.")

	if err := DeviceCreate(vr.context); err != nil {
		return err
	}

	sc, err := SwapchainCreate(vr.context, vr.context.FramebufferWidth, vr.context.FramebufferHeight)
	if err != nil {
		return err
	}
	vr.context.Swapchain = sc

	rp, err := RenderpassCreate(
		vr.context,
		float32(sc.Extent.Width), float32(sc.Extent.Height),
		0.0, 0.0, 0.0, 1.0)
	if err != nil {
		return &core.DeviceInitError{Stage: "render pass", Err: err}
	}
	vr.context.MainRenderpass = rp

	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, sc.ImageCount)
	if err := vr.regenerateFramebuffers(); err != nil {
		return &core.DeviceInitError{Stage: "framebuffers", Err: err}
	}

	if err := vr.createCommandBuffers(); err != nil {
		return &core.DeviceInitError{Stage: "command buffers", Err: err}
	}

	if err := vr.createSyncObjects(); err != nil {
		return &core.DeviceInitError{Stage: "sync objects", Err: err}
	}

	if err := vr.createSceneResources(); err != nil {
		return &core.DeviceInitError{Stage: "scene resources", Err: err}
	}

	if err := vr.compiler.Preload(); err != nil {
		return err
	}
	if err := vr.buildPipeline(""); err != nil {
		return err
	}

	core.LogInfo("Vulkan renderer initialized successfully.")
	return nil
}

func (vr *VulkanRenderer) createInstance(appName string) error {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("Marcher"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	requiredExtensions := []string{"VK_KHR_surface"}
	requiredExtensions = append(requiredExtensions, vr.platform.GetRequiredExtensionNames()...)
	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
		createInfo.Flags |= 1
	}

	vr.validationActive = false
	layerNames := []string{}
	if vr.options.Validation {
		if validationLayerAvailable() {
			layerNames = append(layerNames, "VK_LAYER_KHRONOS_validation")
			requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)
			vr.validationActive = true
			core.LogInfo("Validation layer enabled.")
		} else {
			core.LogWarn("validation requested but VK_LAYER_KHRONOS_validation is not installed, continuing without it")
		}
	}

	core.LogDebug("Required instance extensions: %v", requiredExtensions)

	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)
	createInfo.EnabledLayerCount = uint32(len(layerNames))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(layerNames)

	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &vr.context.Instance); res != vk.Success {
		return &core.DeviceInitError{Stage: "instance", Err: vkError("vkCreateInstance", res)}
	}
	if err := vk.InitInstance(vr.context.Instance); err != nil {
		return &core.DeviceInitError{Stage: "instance", Err: err}
	}
	core.LogInfo("Vulkan instance created.")
	return nil
}

func validationLayerAvailable() bool {
	var availableLayerCount uint32
	if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, nil); res != vk.Success {
		return false
	}
	availableLayers := make([]vk.LayerProperties, availableLayerCount)
	if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, availableLayers); res != vk.Success {
		return false
	}
	for i := range availableLayers {
		availableLayers[i].Deref()
		nameEnd := FindFirstZeroInByteArray(availableLayers[i].LayerName[:])
		if string(availableLayers[i].LayerName[:nameEnd]) == "VK_LAYER_KHRONOS_validation" {
			return true
		}
	}
	return false
}

// Shutdown destroys everything in the opposite order of creation. Safe to
// call more than once.
func (vr *VulkanRenderer) Shutdown() error {
	if vr.shutdownDone {
		core.LogDebug("renderer backend shutdown called twice")
		return nil
	}
	vr.shutdownDone = true

	if vr.context.Device.LogicalDevice != nil {
		vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)
	}

	if vr.pipeline != nil {
		vr.pipeline.Destroy(vr.context)
		vr.pipeline = nil
	}

	if vr.descriptorPool != vk.NullDescriptorPool {
		vk.DestroyDescriptorPool(vr.context.Device.LogicalDevice, vr.descriptorPool, vr.context.Allocator)
		vr.descriptorPool = vk.NullDescriptorPool
	}
	vr.descriptorSets = nil

	for _, buffer := range vr.sceneBuffers {
		buffer.Destroy(vr.context)
	}
	vr.sceneBuffers = nil

	for i := range vr.imageAvailableSemaphores {
		if vr.imageAvailableSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(vr.context.Device.LogicalDevice, vr.imageAvailableSemaphores[i], vr.context.Allocator)
		}
		if vr.queueCompleteSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(vr.context.Device.LogicalDevice, vr.queueCompleteSemaphores[i], vr.context.Allocator)
		}
		vr.inFlightFences[i].FenceDestroy(vr.context)
	}
	vr.imageAvailableSemaphores = nil
	vr.queueCompleteSemaphores = nil
	vr.inFlightFences = nil
	vr.imagesInFlight = nil

	for _, commandBuffer := range vr.graphicsCommandBuffers {
		if commandBuffer != nil && commandBuffer.Handle != nil {
			commandBuffer.Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
	}
	vr.graphicsCommandBuffers = nil

	if vr.context.Swapchain != nil {
		for _, framebuffer := range vr.context.Swapchain.Framebuffers {
			if framebuffer != nil {
				framebuffer.Destroy(vr.context)
			}
		}
		vr.context.Swapchain.SwapchainDestroy(vr.context)
		vr.context.Swapchain = nil
	}

	if vr.context.MainRenderpass != nil {
		vr.context.MainRenderpass.RenderpassDestroy(vr.context)
		vr.context.MainRenderpass = nil
	}

	core.LogDebug("Destroying Vulkan device...")
	DeviceDestroy(vr.context)

	core.LogDebug("Destroying Vulkan surface...")
	if vr.context.Surface != vk.NullSurface {
		vk.DestroySurface(vr.context.Instance, vr.context.Surface, vr.context.Allocator)
		vr.context.Surface = vk.NullSurface
	}

	if vr.validationActive {
		destroyDebugMessenger(vr.context)
	}

	core.LogDebug("Destroying Vulkan instance...")
	vk.DestroyInstance(vr.context.Instance, vr.context.Allocator)
	vr.context.Instance = nil

	return nil
}

// RecreateSwapchain rebuilds the swapchain and everything derived from it at
// the given extent. A format change also rebuilds the render pass and
// pipeline.
func (vr *VulkanRenderer) RecreateSwapchain(width, height uint32) error {
	if vr.shutdownDone {
		return core.ErrUseAfterShutdown
	}
	if width == 0 || height == 0 {
		return core.ErrSurfaceUnavailable
	}

	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	for i := range vr.imagesInFlight {
		vr.imagesInFlight[i] = nil
	}

	if err := DeviceQuerySwapchainSupport(vr.context.Device.PhysicalDevice, vr.context.Surface, &vr.context.Device.SwapchainSupport); err != nil {
		return err
	}

	// The old framebuffers and command buffers reference the old images.
	for _, framebuffer := range vr.context.Swapchain.Framebuffers {
		if framebuffer != nil {
			framebuffer.Destroy(vr.context)
		}
	}
	for _, commandBuffer := range vr.graphicsCommandBuffers {
		if commandBuffer != nil && commandBuffer.Handle != nil {
			commandBuffer.Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
	}

	sc, formatChanged, err := vr.context.Swapchain.SwapchainRecreate(vr.context, width, height)
	if err != nil {
		return err
	}
	vr.context.Swapchain = sc
	vr.context.FramebufferWidth = sc.Extent.Width
	vr.context.FramebufferHeight = sc.Extent.Height

	if formatChanged {
		vr.context.MainRenderpass.RenderpassDestroy(vr.context)
		rp, err := RenderpassCreate(
			vr.context,
			float32(sc.Extent.Width), float32(sc.Extent.Height),
			0.0, 0.0, 0.0, 1.0)
		if err != nil {
			return &core.PipelineBuildError{Reason: "render pass rebuild after format change", Err: err}
		}
		vr.context.MainRenderpass = rp
		if err := vr.buildPipeline(""); err != nil {
			return err
		}
	} else {
		vr.context.MainRenderpass.W = float32(sc.Extent.Width)
		vr.context.MainRenderpass.H = float32(sc.Extent.Height)
	}

	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, sc.ImageCount)
	if err := vr.regenerateFramebuffers(); err != nil {
		return err
	}
	if err := vr.createCommandBuffers(); err != nil {
		return err
	}
	vr.imagesInFlight = make([]*VulkanFence, sc.ImageCount)

	return nil
}

// waitImageRetired blocks until the last submission targeting the given
// swapchain image has finished. With more images than frame slots the image
// can be guarded by another slot's fence.
func (vr *VulkanRenderer) waitImageRetired(imageIndex uint32) bool {
	fence := vr.imagesInFlight[imageIndex]
	if fence == nil {
		return true
	}
	return fence.FenceWait(vr.context, uint64(vr.options.AcquireTimeout.Nanoseconds()))
}

func (vr *VulkanRenderer) BeginFrame(packet *renderer.RenderPacket) error {
	if vr.shutdownDone {
		return core.ErrUseAfterShutdown
	}

	// Wait for the oldest frame on this slot to finish before reusing its
	// sync objects and scene buffer.
	if !vr.inFlightFences[vr.currentFrame].FenceWait(vr.context, uint64(vr.options.AcquireTimeout.Nanoseconds())) {
		return core.ErrAcquireTimedOut
	}

	imageIndex, err := vr.context.Swapchain.SwapchainAcquireNextImageIndex(
		vr.context,
		uint64(vr.options.AcquireTimeout.Nanoseconds()),
		vr.imageAvailableSemaphores[vr.currentFrame],
		vk.NullFence)
	if err != nil {
		return err
	}
	vr.imageIndex = imageIndex

	// The acquired image may still be owned by a frame submitted from a
	// different slot; its command buffer must not be reset until that frame
	// retires.
	if !vr.waitImageRetired(vr.imageIndex) {
		return core.ErrAcquireTimedOut
	}

	// The fence wait above guarantees this slot's buffer is not being read.
	vr.sceneBuffers[vr.currentFrame].Upload(renderer.EncodeSceneUniform(packet))

	commandBuffer := vr.graphicsCommandBuffers[vr.imageIndex]
	commandBuffer.Reset()
	if err := commandBuffer.Begin(false, false, false); err != nil {
		return err
	}

	viewport := vk.Viewport{
		X:        0.0,
		Y:        0.0,
		Width:    float32(vr.context.FramebufferWidth),
		Height:   float32(vr.context.FramebufferHeight),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: vk.Extent2D{
			Width:  vr.context.FramebufferWidth,
			Height: vr.context.FramebufferHeight,
		},
	}
	vk.CmdSetViewport(commandBuffer.Handle, 0, 1, []vk.Viewport{viewport})
	vk.CmdSetScissor(commandBuffer.Handle, 0, 1, []vk.Rect2D{scissor})

	vr.context.MainRenderpass.RenderpassBegin(commandBuffer, vr.context.Swapchain.Framebuffers[vr.imageIndex].Handle)

	return nil
}

func (vr *VulkanRenderer) EndFrame(packet *renderer.RenderPacket) error {
	if vr.shutdownDone {
		return core.ErrUseAfterShutdown
	}

	commandBuffer := vr.graphicsCommandBuffers[vr.imageIndex]

	vr.pipeline.Bind(commandBuffer)
	vk.CmdBindDescriptorSets(
		commandBuffer.Handle,
		vk.PipelineBindPointGraphics,
		vr.pipeline.PipelineLayout,
		0, 1, []vk.DescriptorSet{vr.descriptorSets[vr.currentFrame]},
		0, nil)

	pushConstants := renderer.EncodePushConstants(packet)
	vk.CmdPushConstants(
		commandBuffer.Handle,
		vr.pipeline.PipelineLayout,
		vk.ShaderStageFlags(vk.ShaderStageVertexBit)|vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
		0, uint32(len(pushConstants)), unsafe.Pointer(&pushConstants[0]))

	// Two triangles covering the screen, synthesized in the vertex shader.
	vk.CmdDraw(commandBuffer.Handle, 6, 1, 0, 0)

	vr.context.MainRenderpass.RenderpassEnd(commandBuffer)
	if err := commandBuffer.End(); err != nil {
		return err
	}

	// BeginFrame already waited for the previous user of this image.
	vr.imagesInFlight[vr.imageIndex] = vr.inFlightFences[vr.currentFrame]

	if err := vr.inFlightFences[vr.currentFrame].FenceReset(vr.context); err != nil {
		return err
	}

	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{commandBuffer.Handle},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{vr.queueCompleteSemaphores[vr.currentFrame]},
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{vr.imageAvailableSemaphores[vr.currentFrame]},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
	}

	if result := vk.QueueSubmit(vr.context.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, vr.inFlightFences[vr.currentFrame].Handle); result != vk.Success {
		return vkError("vkQueueSubmit", result)
	}
	commandBuffer.UpdateSubmitted()
	vr.frameNumber++

	err := vr.context.Swapchain.SwapchainPresent(
		vr.context,
		vr.context.Device.PresentQueue,
		vr.queueCompleteSemaphores[vr.currentFrame],
		vr.imageIndex)

	// The slot advances even when present reports a stale swapchain; the
	// submitted work still completes and signals the fence.
	vr.currentFrame = (vr.currentFrame + 1) % uint32(vr.options.FramesInFlight)

	return err
}

// OverlayTarget exposes the swapchain-derived resources an external overlay
// pass records against. Stale after any swapchain recreation.
func (vr *VulkanRenderer) OverlayTarget() renderer.OverlayTarget {
	sc := vr.context.Swapchain
	if sc == nil {
		return renderer.OverlayTarget{}
	}
	framebuffers := make([]vk.Framebuffer, len(sc.Framebuffers))
	for i, fb := range sc.Framebuffers {
		if fb != nil {
			framebuffers[i] = fb.Handle
		}
	}
	return renderer.OverlayTarget{
		Format:       sc.ImageFormat.Format,
		Width:        sc.Extent.Width,
		Height:       sc.Extent.Height,
		RenderPass:   vr.context.MainRenderpass.Handle,
		Framebuffers: framebuffers,
	}
}

// ReloadShaders recompiles the shader pair and swaps in a freshly built
// pipeline. path selects a WGSL file on disk; an empty path compiles the
// embedded sources. The old pipeline stays active on any failure.
func (vr *VulkanRenderer) ReloadShaders(path string) error {
	if vr.shutdownDone {
		return core.ErrUseAfterShutdown
	}
	return vr.buildPipeline(path)
}

func (vr *VulkanRenderer) buildPipeline(path string) error {
	var (
		vertex   *shaders.Artifact
		fragment *shaders.Artifact
		err      error
	)
	if path == "" {
		if vertex, err = vr.compiler.CompileBuiltin(shaders.ModuleRaymarch, shaders.StageVertex); err != nil {
			return err
		}
		if fragment, err = vr.compiler.CompileBuiltin(shaders.ModuleRaymarch, shaders.StageFragment); err != nil {
			return err
		}
	} else {
		if vertex, err = vr.compiler.CompileFile(path, shaders.StageVertex); err != nil {
			return err
		}
		if fragment, err = vr.compiler.CompileFile(path, shaders.StageFragment); err != nil {
			return err
		}
	}

	pipeline, err := NewGraphicsPipeline(vr.context, &VulkanPipelineConfig{
		Renderpass:       vr.context.MainRenderpass,
		Vertex:           vertex,
		Fragment:         fragment,
		PushConstantSize: renderer.PushConstantSize,
	})
	if err != nil {
		return err
	}

	if vr.pipeline != nil {
		vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)
		vr.pipeline.Destroy(vr.context)
	}
	vr.pipeline = pipeline

	// Descriptor sets are bound to the layout of the previous pipeline;
	// rewrite them against the new one.
	return vr.writeDescriptorSets()
}

func (vr *VulkanRenderer) createCommandBuffers() error {
	vr.graphicsCommandBuffers = make([]*VulkanCommandBuffer, vr.context.Swapchain.ImageCount)
	for i := range vr.graphicsCommandBuffers {
		cb, err := NewVulkanCommandBuffer(vr.context, vr.context.Device.GraphicsCommandPool, true)
		if err != nil {
			return err
		}
		vr.graphicsCommandBuffers[i] = cb
	}
	core.LogDebug("Vulkan command buffers created.")
	return nil
}

func (vr *VulkanRenderer) regenerateFramebuffers() error {
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		attachments := []vk.ImageView{vr.context.Swapchain.Views[i]}
		fb, err := FramebufferCreate(
			vr.context,
			vr.context.MainRenderpass,
			vr.context.Swapchain.Extent.Width,
			vr.context.Swapchain.Extent.Height,
			attachments)
		if err != nil {
			return err
		}
		vr.context.Swapchain.Framebuffers[i] = fb
	}
	return nil
}

func (vr *VulkanRenderer) createSyncObjects() error {
	framesInFlight := vr.options.FramesInFlight
	vr.imageAvailableSemaphores = make([]vk.Semaphore, framesInFlight)
	vr.queueCompleteSemaphores = make([]vk.Semaphore, framesInFlight)
	vr.inFlightFences = make([]*VulkanFence, framesInFlight)

	for i := 0; i < framesInFlight; i++ {
		semaphoreCreateInfo := vk.SemaphoreCreateInfo{
			SType: vk.StructureTypeSemaphoreCreateInfo,
		}
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.imageAvailableSemaphores[i]); res != vk.Success {
			return vkError("vkCreateSemaphore", res)
		}
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.queueCompleteSemaphores[i]); res != vk.Success {
			return vkError("vkCreateSemaphore", res)
		}

		// Created signaled so the first frame does not wait forever on a
		// fence no prior frame will ever signal.
		f, err := NewFence(vr.context, true)
		if err != nil {
			return err
		}
		vr.inFlightFences[i] = f
	}

	vr.imagesInFlight = make([]*VulkanFence, vr.context.Swapchain.ImageCount)
	return nil
}

func (vr *VulkanRenderer) createSceneResources() error {
	framesInFlight := vr.options.FramesInFlight

	vr.sceneBuffers = make([]*VulkanBuffer, framesInFlight)
	for i := 0; i < framesInFlight; i++ {
		buffer, err := UniformBufferCreate(vr.context, renderer.SceneUniformSize)
		if err != nil {
			return err
		}
		vr.sceneBuffers[i] = buffer
	}

	poolSize := vk.DescriptorPoolSize{
		Type:            vk.DescriptorTypeUniformBuffer,
		DescriptorCount: uint32(framesInFlight),
	}
	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       uint32(framesInFlight),
		PoolSizeCount: 1,
		PPoolSizes:    []vk.DescriptorPoolSize{poolSize},
		Flags:         vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
	}
	if res := vk.CreateDescriptorPool(vr.context.Device.LogicalDevice, &poolInfo, vr.context.Allocator, &vr.descriptorPool); res != vk.Success {
		return vkError("vkCreateDescriptorPool", res)
	}

	return nil
}

// writeDescriptorSets allocates one descriptor set per frame slot against
// the current pipeline's layout and points each at its scene buffer.
func (vr *VulkanRenderer) writeDescriptorSets() error {
	framesInFlight := vr.options.FramesInFlight

	if len(vr.descriptorSets) > 0 {
		vk.FreeDescriptorSets(vr.context.Device.LogicalDevice, vr.descriptorPool, uint32(len(vr.descriptorSets)), &vr.descriptorSets[0])
	}

	vr.descriptorSets = make([]vk.DescriptorSet, framesInFlight)
	for i := 0; i < framesInFlight; i++ {
		allocInfo := vk.DescriptorSetAllocateInfo{
			SType:              vk.StructureTypeDescriptorSetAllocateInfo,
			DescriptorPool:     vr.descriptorPool,
			DescriptorSetCount: 1,
			PSetLayouts:        []vk.DescriptorSetLayout{vr.pipeline.DescriptorSetLayout},
		}
		var set vk.DescriptorSet
		if res := vk.AllocateDescriptorSets(vr.context.Device.LogicalDevice, &allocInfo, &set); res != vk.Success {
			return vkError("vkAllocateDescriptorSets", res)
		}
		vr.descriptorSets[i] = set

		bufferInfo := vk.DescriptorBufferInfo{
			Buffer: vr.sceneBuffers[i].Handle,
			Offset: 0,
			Range:  vr.sceneBuffers[i].Size,
		}
		write := vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set,
			DstBinding:      0,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			PBufferInfo:     []vk.DescriptorBufferInfo{bufferInfo},
		}
		vk.UpdateDescriptorSets(vr.context.Device.LogicalDevice, 1, []vk.WriteDescriptorSet{write}, 0, nil)
	}
	return nil
}
