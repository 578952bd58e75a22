package uartfem

// ConfigBuilder stages a register update for the board. Only the touched
// fields change, everything else keeps its current value.
type ConfigBuilder struct {
	chip            *Chip
	stagedRegisters registersCollection
}

// NewConfigBuilder constructs ConfigBuilder over the chip's current state.
func NewConfigBuilder(chip *Chip) *ConfigBuilder {
	return &ConfigBuilder{
		chip:            chip,
		stagedRegisters: chip.registers.Copy(),
	}
}

// PAState enables or disables the PA path.
func (obj *ConfigBuilder) PAState(state paState) *ConfigBuilder {
	ctrl := obj.stagedRegisters[CTRL].(*Ctrl)
	ctrl.pa = state
	return obj
}

// LNAState enables or disables the LNA path.
func (obj *ConfigBuilder) LNAState(state lnaState) *ConfigBuilder {
	ctrl := obj.stagedRegisters[CTRL].(*Ctrl)
	ctrl.lna = state
	return obj
}

// BypassState routes the signal around both amplifier stages.
func (obj *ConfigBuilder) BypassState(state bypassState) *ConfigBuilder {
	ctrl := obj.stagedRegisters[CTRL].(*Ctrl)
	ctrl.bypass = state
	return obj
}

// Antenna selects the antenna port.
func (obj *ConfigBuilder) Antenna(ant antenna) *ConfigBuilder {
	ctrl := obj.stagedRegisters[CTRL].(*Ctrl)
	ctrl.antenna = ant
	return obj
}

// Gain selects the PA gain preset.
func (obj *ConfigBuilder) Gain(code gainCode) *ConfigBuilder {
	gain := obj.stagedRegisters[GAIN].(*Gain)
	gain.code = code
	return obj
}

// PALead sets the PA activation lead in microseconds.
func (obj *ConfigBuilder) PALead(us uint8) *ConfigBuilder {
	obj.stagedRegisters[TIM0].SetValue(us)
	return obj
}

// LNALead sets the LNA activation lead in microseconds.
func (obj *ConfigBuilder) LNALead(us uint8) *ConfigBuilder {
	obj.stagedRegisters[TIM1].SetValue(us)
	return obj
}

// WritePermanentConfig writes the staged config to the board.
func (obj *ConfigBuilder) WritePermanentConfig() error {
	return obj.chip.writeConfig(false, obj.stagedRegisters)
}

// WriteTemporaryConfig writes the staged config, lost on board reboot.
func (obj *ConfigBuilder) WriteTemporaryConfig() error {
	return obj.chip.writeConfig(true, obj.stagedRegisters)
}
