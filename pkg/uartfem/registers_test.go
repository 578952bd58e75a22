package uartfem

import "testing"

func TestCtrlBitfields(t *testing.T) {
	reg := &Ctrl{}
	reg.SetValue(0xE1)
	if reg.pa != PA_ENABLE {
		t.Error("PA bit not parsed")
	}
	if reg.lna != LNA_ENABLE {
		t.Error("LNA bit not parsed")
	}
	if reg.bypass != BYPASS_ENABLE {
		t.Error("bypass bit not parsed")
	}
	if reg.antenna != ANT_2 {
		t.Error("antenna bit not parsed")
	}
	if got := reg.GetValue(); got != 0xE1 {
		t.Errorf("GetValue = %#02x, want 0xE1", got)
	}
}

func TestGainClamp(t *testing.T) {
	reg := &Gain{}
	reg.SetValue(0x17)
	if reg.code != GAIN_22_DB {
		t.Errorf("gain code = %d, want clamp to %d", reg.code, GAIN_22_DB)
	}
}

func TestGainCodeFor(t *testing.T) {
	code, err := gainCodeFor(16)
	if err != nil {
		t.Fatalf("gainCodeFor(16): %v", err)
	}
	if code != GAIN_16_DB {
		t.Errorf("gainCodeFor(16) = %d, want %d", code, GAIN_16_DB)
	}
	if _, err := gainCodeFor(17); err == nil {
		t.Error("gainCodeFor(17) succeeded, want error")
	}
}

func TestCollectionCopyIsDetached(t *testing.T) {
	regs := newRegistersCollection()
	regs[GAIN].SetValue(uint8(GAIN_19_DB))

	staged := regs.Copy()
	staged[GAIN].SetValue(uint8(GAIN_6_DB))

	if got := regs[GAIN].GetValue(); got != uint8(GAIN_19_DB) {
		t.Errorf("copy mutated the source: gain = %d", got)
	}
	if got := staged[GAIN].GetValue(); got != uint8(GAIN_6_DB) {
		t.Errorf("staged gain = %d, want %d", got, GAIN_6_DB)
	}
}

func TestSaveConfig(t *testing.T) {
	chip := &Chip{registers: newRegistersCollection()}

	frame := []byte{cmdReadConfig, 0x00, 0x04, 0xC0, uint8(GAIN_12_DB), 13, 5}
	if err := chip.saveConfig(frame); err != nil {
		t.Fatalf("saveConfig: %v", err)
	}
	if got := chip.registers[CTRL].GetValue(); got != 0xC0 {
		t.Errorf("CTRL = %#02x, want 0xC0", got)
	}
	if got := chip.registers[GAIN].GetValue(); got != uint8(GAIN_12_DB) {
		t.Errorf("GAIN = %d, want %d", got, GAIN_12_DB)
	}
	if got := chip.registers[TIM0].GetValue(); got != 13 {
		t.Errorf("TIM0 = %d, want 13", got)
	}
	if got := chip.registers[TIM1].GetValue(); got != 5 {
		t.Errorf("TIM1 = %d, want 5", got)
	}
}

func TestSaveConfigRejectsBadFrames(t *testing.T) {
	chip := &Chip{registers: newRegistersCollection()}
	tests := []struct {
		name  string
		frame []byte
	}{
		{"too short", []byte{cmdReadConfig, 0x00}},
		{"truncated parameters", []byte{cmdReadConfig, 0x00, 0x04, 0x01}},
		{"address overflow", []byte{cmdReadConfig, 0x03, 0x02, 0x01, 0x02}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := chip.saveConfig(tt.frame); err == nil {
				t.Error("saveConfig accepted a bad frame")
			}
		})
	}
}
