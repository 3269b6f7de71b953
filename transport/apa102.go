package transport

import (
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/apa102"
	"periph.io/x/host/v3"

	"github.com/rowr111/easyblink/pixel"
)

// APA102 drives an APA102-class strip over SPI through periph.io.
type APA102 struct {
	port spi.PortCloser // nil when the port was injected
	dev  *apa102.Dev
	buf  []byte
}

// Open initializes the host, opens the platform-default SPI port (clock on
// GPIO 11, data on GPIO 10 on a Raspberry Pi) and binds an APA102 device of
// numPixels LEDs to it.
func Open(numPixels int, dev string, intensity uint8) (*APA102, error) {
	if _, err := host.Init(); err != nil {
		return nil, &InitError{Dev: "host", Err: err}
	}
	p, err := spireg.Open(dev)
	if err != nil {
		return nil, &InitError{Dev: "spi", Err: err}
	}
	t, err := NewAPA102(p, numPixels, intensity)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	t.port = p
	return t, nil
}

// NewAPA102 binds an APA102 device to an already-open port. The port is not
// closed by Close; callers own injected ports. Intensity 0 means full.
func NewAPA102(p spi.Port, numPixels int, intensity uint8) (*APA102, error) {
	if intensity == 0 {
		intensity = 255
	}
	o := apa102.DefaultOpts
	o.NumPixels = numPixels
	o.Intensity = intensity
	o.Temperature = apa102.NeutralTemp
	d, err := apa102.New(p, &o)
	if err != nil {
		return nil, &InitError{Dev: "apa102", Err: err}
	}
	return &APA102{dev: d, buf: make([]byte, numPixels*3)}, nil
}

func (t *APA102) WriteFrame(pixels []pixel.Pixel) error {
	for i, p := range pixels {
		t.buf[i*3+0] = scale(p.R, p.Brightness)
		t.buf[i*3+1] = scale(p.G, p.Brightness)
		t.buf[i*3+2] = scale(p.B, p.Brightness)
	}
	if _, err := t.dev.Write(t.buf); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

func (t *APA102) Close() error {
	err := t.dev.Halt()
	if t.port != nil {
		if cerr := t.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
