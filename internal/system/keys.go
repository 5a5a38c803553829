package system

// Linux input-event-codes.h
const (
	KeyEsc uint16 = 1
	KeyQ   uint16 = 16
	KeyF4  uint16 = 62
)

// ExitKeys are the keys that stop the clock on the framebuffer sink.
var ExitKeys = []uint16{KeyEsc, KeyQ, KeyF4}
