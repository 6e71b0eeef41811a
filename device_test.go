package holofoil

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

// mockQueue implements gpucontext.Queue for testing.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter for testing.
type mockAdapter struct{}

// halMockProvider exposes direct HAL access the way gogpu hosts do.
type halMockProvider struct {
	halDevice any
	halQueue  any
	format    gputypes.TextureFormat
}

func (p *halMockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (p *halMockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (p *halMockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (p *halMockProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p *halMockProvider) HalDevice() any                        { return p.halDevice }
func (p *halMockProvider) HalQueue() any                         { return p.halQueue }
func (p *halMockProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// bareProvider implements only the gpucontext surface, without HAL access.
type bareProvider struct{}

func (bareProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (bareProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (bareProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (bareProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (bareProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

func TestHalHandles(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	provider := &halMockProvider{
		halDevice: device,
		halQueue:  queue,
		format:    gputypes.TextureFormatRGBA8UnormSrgb,
	}

	gotDevice, gotQueue, format, err := HalHandles(provider)
	if err != nil {
		t.Fatalf("HalHandles failed: %v", err)
	}
	if gotDevice != device {
		t.Error("device not passed through")
	}
	if gotQueue != queue {
		t.Error("queue not passed through")
	}
	if format != gputypes.TextureFormatRGBA8UnormSrgb {
		t.Errorf("format = %v, want RGBA8UnormSrgb", format)
	}
}

func TestHalHandlesDefaultsFormat(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	provider := &halMockProvider{
		halDevice: device,
		halQueue:  queue,
		format:    gputypes.TextureFormatUndefined,
	}

	_, _, format, err := HalHandles(provider)
	if err != nil {
		t.Fatalf("HalHandles failed: %v", err)
	}
	if format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("format = %v, want BGRA8Unorm fallback", format)
	}
}

func TestHalHandlesNoAccess(t *testing.T) {
	_, _, _, err := HalHandles(bareProvider{})
	if !errors.Is(err, ErrNoHalAccess) {
		t.Errorf("err = %v, want ErrNoHalAccess", err)
	}

	provider := &halMockProvider{halDevice: "not a device", halQueue: "not a queue"}
	_, _, _, err = HalHandles(provider)
	if !errors.Is(err, ErrNoHalAccess) {
		t.Errorf("wrong types: err = %v, want ErrNoHalAccess", err)
	}
}

func TestHalHandlesEndToEnd(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	provider := &halMockProvider{
		halDevice: device,
		halQueue:  queue,
		format:    gputypes.TextureFormatBGRA8Unorm,
	}

	d, q, format, err := HalHandles(provider)
	if err != nil {
		t.Fatalf("HalHandles failed: %v", err)
	}

	p, err := NewPipeline(d, q, format, solidLayer(8))
	if err != nil {
		t.Fatalf("NewPipeline via provider failed: %v", err)
	}
	p.Destroy()
}
