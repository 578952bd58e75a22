package uartfem

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// Configuration frame commands, E22-style protocol.
const (
	cmdWriteConfig     = 0xC0
	cmdReadConfig      = 0xC1
	cmdWriteConfigTemp = 0xC2
)

const configSettle = 100 * time.Millisecond

// Chip talks to the board's configuration interface over UART and mirrors
// its registers locally. Activation is not done over this link, only gain
// and timing setup.
type Chip struct {
	registers registersCollection
	stream    *serial.Port
}

// NewChip opens the configuration link and synchronizes the local register
// model with the values stored on the board.
func NewChip(tty string, baud int) (*Chip, error) {
	stream, err := serial.OpenPort(&serial.Config{
		Name:        tty,
		Baud:        baud,
		Size:        8,
		ReadTimeout: 2 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open config link: %w", err)
	}
	ch := &Chip{
		registers: newRegistersCollection(),
		stream:    stream,
	}
	data, err := ch.readRegisters(0x00, uint8(len(ch.registers)))
	if err != nil {
		return nil, err
	}
	if err := ch.saveConfig(data); err != nil {
		return nil, err
	}
	return ch, nil
}

func (obj *Chip) Close() error {
	if err := obj.stream.Close(); err != nil {
		return fmt.Errorf("failed to close config link: %w", err)
	}
	return nil
}

func (obj *Chip) readRegisters(startingAddress uint8, length uint8) ([]byte, error) {
	if err := obj.write([]byte{cmdReadConfig, startingAddress, length}); err != nil {
		return nil, fmt.Errorf("failed to write read-config frame: %w", err)
	}
	time.Sleep(configSettle)
	data, err := obj.read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config response: %w", err)
	}
	return data, nil
}

// saveConfig parses a config response frame (cmd, start address, length,
// parameters) into the local register model.
func (obj *Chip) saveConfig(data []byte) error {
	if len(data) < 3 {
		return fmt.Errorf("config frame too short")
	}
	startAddr := data[1]
	length := data[2]
	if len(data) < 3+int(length) {
		return fmt.Errorf("config frame truncated, want %d parameters", length)
	}
	if int(startAddr)+int(length) > len(obj.registers) {
		return fmt.Errorf("config frame addresses register %d, have %d",
			int(startAddr)+int(length)-1, len(obj.registers))
	}
	pos := 3
	for i := startAddr; i < startAddr+length; i++ {
		obj.registers[i].SetValue(data[pos])
		pos++
	}
	return nil
}

// writeConfig pushes the staged registers to the board and re-syncs the
// local model from the response. Temporary config is lost on board reboot.
func (obj *Chip) writeConfig(temporary bool, staged registersCollection) error {
	frame := make([]byte, 3+len(staged))
	frame[0] = cmdWriteConfig
	if temporary {
		frame[0] = cmdWriteConfigTemp
	}
	frame[1] = 0x00
	frame[2] = uint8(len(staged))
	for i, reg := range staged {
		frame[3+i] = reg.GetValue()
	}

	if err := obj.write(frame); err != nil {
		return fmt.Errorf("failed to write config frame: %w", err)
	}
	time.Sleep(configSettle)
	resp, err := obj.read()
	if err != nil {
		return fmt.Errorf("failed to read config write response: %w", err)
	}
	if err := obj.saveConfig(resp); err != nil {
		return fmt.Errorf("failed to sync register model: %w", err)
	}
	return nil
}

func (obj *Chip) write(frame []byte) error {
	if _, err := obj.stream.Write(frame); err != nil {
		return fmt.Errorf("config link write: %w", err)
	}
	return nil
}

func (obj *Chip) read() ([]byte, error) {
	buf := make([]byte, 64)
	n, err := obj.stream.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("config link read: %w", err)
	}
	return buf[:n], nil
}

// GetConfiguration returns a printable view of the mirrored registers.
func (obj *Chip) GetConfiguration() string {
	ctrl := obj.registers[CTRL].(*Ctrl)
	gain := obj.registers[GAIN].(*Gain)
	return fmt.Sprintf("CTRL=%#02x GAIN=%d dB PA lead=%d us LNA lead=%d us",
		ctrl.GetValue(), gainDBMap[gain.code],
		obj.registers[TIM0].GetValue(), obj.registers[TIM1].GetValue())
}
