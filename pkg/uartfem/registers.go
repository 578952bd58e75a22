// Package uartfem implements the front-end profile of FEM boards whose gain
// and timing setup lives in on-board registers written over a UART link,
// while PA/LNA activation still runs over CTX/CRX control lines.
package uartfem

import "fmt"

type RegAddress uint8

// Register is one configuration register of the board.
type Register interface {
	GetAddress() RegAddress
	GetValue() uint8
	SetValue(value uint8)
}

type registersCollection [4]Register

func newRegistersCollection() registersCollection {
	return registersCollection{
		&Ctrl{},
		&Gain{},
		&Tim0{},
		&Tim1{},
	}
}

// Copy returns a value copy of every register, for staged configuration.
func (obj registersCollection) Copy() registersCollection {
	staged := newRegistersCollection()
	for i, reg := range obj {
		staged[i].SetValue(reg.GetValue())
	}
	return staged
}

const (
	CTRL RegAddress = iota
	GAIN
	TIM0
	TIM1
)

// CTRL specification

type paState uint8

const (
	PA_DISABLE paState = 0x00
	PA_ENABLE  paState = 0x80
)

type lnaState uint8

const (
	LNA_DISABLE lnaState = 0x00
	LNA_ENABLE  lnaState = 0x40
)

type bypassState uint8

const (
	BYPASS_DISABLE bypassState = 0x00
	BYPASS_ENABLE  bypassState = 0x20
)

type antenna uint8

const (
	ANT_1 antenna = 0x00
	ANT_2 antenna = 0x01
)

type Ctrl struct {
	pa      paState
	lna     lnaState
	bypass  bypassState
	antenna antenna
}

func (obj *Ctrl) GetAddress() RegAddress {
	return CTRL
}

func (obj *Ctrl) GetValue() uint8 {
	return uint8(obj.pa) | uint8(obj.lna) | uint8(obj.bypass) | uint8(obj.antenna)
}

func (obj *Ctrl) SetValue(value uint8) {
	obj.pa = paState(value & 0x80)
	obj.lna = lnaState(value & 0x40)
	obj.bypass = bypassState(value & 0x20)
	obj.antenna = antenna(value & 0x01)
}

// GAIN specification

type gainCode uint8

const (
	GAIN_0_DB gainCode = iota
	GAIN_6_DB
	GAIN_12_DB
	GAIN_16_DB
	GAIN_19_DB
	GAIN_22_DB
)

// gainDBMap maps gain codes to their dB contribution, ascending with code.
var gainDBMap = map[gainCode]int8{
	GAIN_0_DB:  0,
	GAIN_6_DB:  6,
	GAIN_12_DB: 12,
	GAIN_16_DB: 16,
	GAIN_19_DB: 19,
	GAIN_22_DB: 22,
}

func gainCodeFor(db int8) (gainCode, error) {
	for code, value := range gainDBMap {
		if value == db {
			return code, nil
		}
	}
	return 0, fmt.Errorf("no gain code for %d dB", db)
}

type Gain struct {
	code gainCode
}

func (obj *Gain) GetAddress() RegAddress {
	return GAIN
}

func (obj *Gain) GetValue() uint8 {
	return uint8(obj.code)
}

func (obj *Gain) SetValue(value uint8) {
	if value > uint8(GAIN_22_DB) {
		value = uint8(GAIN_22_DB)
	}
	obj.code = gainCode(value)
}

// TIM0 specification

// PA activation lead in microseconds, raw byte.
type Tim0 struct {
	lead uint8
}

func (obj *Tim0) GetAddress() RegAddress {
	return TIM0
}

func (obj *Tim0) GetValue() uint8 {
	return obj.lead
}

func (obj *Tim0) SetValue(value uint8) {
	obj.lead = value
}

// TIM1 specification

// LNA activation lead in microseconds, raw byte.
type Tim1 struct {
	lead uint8
}

func (obj *Tim1) GetAddress() RegAddress {
	return TIM1
}

func (obj *Tim1) GetValue() uint8 {
	return obj.lead
}

func (obj *Tim1) SetValue(value uint8) {
	obj.lead = value
}
