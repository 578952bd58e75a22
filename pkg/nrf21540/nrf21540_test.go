package nrf21540

import (
	"errors"
	"testing"

	"github.com/ahasztag/hal-nordic/pkg/fem"
	"github.com/ahasztag/hal-nordic/pkg/hal"
	"github.com/ahasztag/hal-nordic/pkg/sim"
)

func newFEM(t *testing.T) (*FEM, *sim.Pin, *sim.Pin, *sim.Pin) {
	t.Helper()
	fab := sim.NewFabric()
	txen := sim.NewPin("TXEN", fab)
	rxen := sim.NewPin("RXEN", fab)
	mode := sim.NewPin("MODE", fab)
	f, err := New(Config{TXEN: txen, RXEN: rxen, MODE: mode})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f, txen, rxen, mode
}

func TestNewRequiresControlLine(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, fem.ErrInvalidConfiguration) {
		t.Errorf("New without lines = %v, want ErrInvalidConfiguration", err)
	}
}

func TestSupports(t *testing.T) {
	fab := sim.NewFabric()
	f, err := New(Config{TXEN: sim.NewPin("TXEN", fab)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !f.Supports(hal.PA) {
		t.Error("PA path wired but not supported")
	}
	if f.Supports(hal.LNA) {
		t.Error("LNA path not wired but supported")
	}
}

func TestGainPresets(t *testing.T) {
	f, _, _, mode := newFEM(t)

	if got := f.Gain(); got != GAIN_POUTA {
		t.Fatalf("default gain = %d, want %d", got, GAIN_POUTA)
	}
	if mode.Level() {
		t.Fatal("MODE line active for POUTA")
	}

	if err := f.GainSet(GAIN_POUTB); err != nil {
		t.Fatalf("GainSet(POUTB): %v", err)
	}
	if !mode.Level() {
		t.Error("MODE line inactive for POUTB")
	}
	if got := f.Gain(); got != GAIN_POUTB {
		t.Errorf("gain = %d, want %d", got, GAIN_POUTB)
	}

	if err := f.GainSet(15); !errors.Is(err, fem.ErrInvalidConfiguration) {
		t.Errorf("GainSet(15) = %v, want ErrInvalidConfiguration", err)
	}
}

func TestGainFixedWithoutModeLine(t *testing.T) {
	fab := sim.NewFabric()
	f, err := New(Config{TXEN: sim.NewPin("TXEN", fab)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := len(f.GainModes()); got != 1 {
		t.Fatalf("gain modes without MODE line = %d, want 1", got)
	}
	if err := f.GainSet(GAIN_POUTB); !errors.Is(err, fem.ErrInvalidConfiguration) {
		t.Errorf("GainSet(POUTB) without MODE line = %v, want ErrInvalidConfiguration", err)
	}
}

func TestDriveInactive(t *testing.T) {
	f, txen, rxen, _ := newFEM(t)
	txen.Drive(true)
	rxen.Drive(true)

	f.DriveInactive(hal.PA)
	if txen.Level() {
		t.Error("TXEN still active")
	}
	if !rxen.Level() {
		t.Error("DriveInactive(PA) touched RXEN")
	}
}

func TestSplitAgainstProfile(t *testing.T) {
	f, _, _, _ := newFEM(t)

	split, err := fem.SplitPower(f, 28)
	if err != nil {
		t.Fatalf("SplitPower(28): %v", err)
	}
	if split.RadioTxPower != 8 || split.FEMGain != GAIN_POUTA {
		t.Errorf("SplitPower(28) = %+v, want radio 8 + FEM %d", split, GAIN_POUTA)
	}

	split, err = fem.SplitPower(f, 29)
	if !errors.Is(err, fem.ErrOutOfRange) {
		t.Errorf("SplitPower(29) error = %v, want ErrOutOfRange", err)
	}
	if split.Total() != 28 {
		t.Errorf("SplitPower(29) total = %d, want clamped 28", split.Total())
	}
}
