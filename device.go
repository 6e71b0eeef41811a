package holofoil

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// Hosts built on the gogpu stack already carry a gpucontext.DeviceProvider;
// this alias lets them hand it to holofoil directly. The key principle:
// holofoil RECEIVES the device from the host, it does not create one.
type DeviceHandle = gpucontext.DeviceProvider

// ErrNoHalAccess is returned when a provider does not expose the
// underlying hal device and queue.
var ErrNoHalAccess = errors.New("holofoil: device provider does not expose HAL types")

// HalHandles extracts the hal device, queue, and surface format from a
// device provider. The provider must additionally expose direct HAL
// access (HalDevice/HalQueue returning hal.Device and hal.Queue), as
// gogpu hosts do.
//
// The returned handles can be passed straight to NewPipeline and
// NewReloader. When the provider does not report a surface format,
// BGRA8Unorm is assumed.
func HalHandles(provider DeviceHandle) (hal.Device, hal.Queue, gputypes.TextureFormat, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, gputypes.TextureFormatUndefined, ErrNoHalAccess
	}

	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, gputypes.TextureFormatUndefined, ErrNoHalAccess
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, gputypes.TextureFormatUndefined, ErrNoHalAccess
	}

	format := gputypes.TextureFormatBGRA8Unorm
	if fp, ok := provider.(interface {
		SurfaceFormat() gputypes.TextureFormat
	}); ok {
		if f := fp.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			format = f
		}
	}

	return device, queue, format, nil
}
