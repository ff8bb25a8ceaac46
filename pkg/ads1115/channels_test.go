package ads1115

import (
	"errors"
	"testing"
)

func TestSelectChannel(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		seen := make(map[Channel]int)
		for i := 0; i < NumChannels; i++ {
			ch, err := SelectChannel(i)
			if err != nil {
				t.Fatalf("channel %d: unexpected error: %v", i, err)
			}
			if ch.Index() != i {
				t.Errorf("channel %d: got index %d", i, ch.Index())
			}
			if ch != Channels[i] {
				t.Errorf("channel %d: got %s, want %s", i, ch, Channels[i])
			}
			if prev, dup := seen[ch]; dup {
				t.Errorf("channels %d and %d both map to %s", prev, i, ch)
			}
			seen[ch] = i
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, i := range []int{-1, 4, 8, 255} {
			if _, err := SelectChannel(i); !errors.Is(err, ErrInvalidChannel) {
				t.Errorf("channel %d: expected ErrInvalidChannel, got %v", i, err)
			}
		}
	})

	t.Run("Mux", func(t *testing.T) {
		want := []uint16{ConfigMuxSingle0, ConfigMuxSingle1, ConfigMuxSingle2, ConfigMuxSingle3}
		for i, ch := range Channels {
			mux, err := ch.mux()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mux != want[i] {
				t.Errorf("%s: expected mux 0x%04X, got 0x%04X", ch, want[i], mux)
			}
		}
		if _, err := Channel(4).mux(); !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("expected ErrInvalidChannel, got %v", err)
		}
		if Channel(4).String() != "(invalid channel)" {
			t.Errorf("unexpected string %q", Channel(4).String())
		}
	})
}

func TestSelectRange(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		table := []float64{0.256, 0.512, 1.024, 2.048, 4.096, 6.144}
		pga := []uint16{
			ConfigPGA0p256V, ConfigPGA0p512V, ConfigPGA1p024V,
			ConfigPGA2p048V, ConfigPGA4p096V, ConfigPGA6p144V,
		}
		for i, want := range table {
			fsr, scale, err := SelectRange(i)
			if err != nil {
				t.Fatalf("range %d: unexpected error: %v", i, err)
			}
			if int(fsr) != i {
				t.Errorf("range %d: got %d", i, int(fsr))
			}
			if scale != want {
				t.Errorf("range %d: expected scale %v, got %v", i, want, scale)
			}
			bits, err := fsr.PGA()
			if err != nil {
				t.Fatalf("range %d: unexpected error: %v", i, err)
			}
			if bits != pga[i] {
				t.Errorf("range %d: expected PGA 0x%04X, got 0x%04X", i, pga[i], bits)
			}
			if RangeOf(bits) != fsr {
				t.Errorf("range %d: PGA bits map back to %s", i, RangeOf(bits))
			}
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, i := range []int{-1, 6, 100} {
			if _, _, err := SelectRange(i); !errors.Is(err, ErrInvalidRange) {
				t.Errorf("range %d: expected ErrInvalidRange, got %v", i, err)
			}
		}
		if FullScaleRange(6).Scale() != 0 {
			t.Error("expected zero scale for invalid range")
		}
		if _, err := FullScaleRange(-1).PGA(); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
	})
}
