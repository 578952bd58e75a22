package main

import (
	"log"

	"github.com/ahasztag/hal-nordic/pkg/fem"
	"github.com/ahasztag/hal-nordic/pkg/hal"
	"github.com/ahasztag/hal-nordic/pkg/nrf21540"
	"github.com/ahasztag/hal-nordic/pkg/sim"
)

// Demo of one receive-then-transmit radio exchange against the simulated
// peripherals. See examples/nrf21540_setup for real hardware.
func main() {
	fab := sim.NewFabric()
	timer := sim.NewTimer(fab)

	txen := sim.NewPin("TXEN", fab)
	rxen := sim.NewPin("RXEN", fab)
	mode := sim.NewPin("MODE", fab)

	fe, err := nrf21540.New(nrf21540.Config{TXEN: txen, RXEN: rxen, MODE: mode})
	if err != nil {
		log.Fatal(err)
	}
	ctrl, err := fem.NewController(fab, fe)
	if err != nil {
		log.Fatal(err)
	}

	// Listen first, then send the frame: LNA configuration must come first
	// to match the order of the radio operations.
	rxDone := fab.NewEvent()
	txDone := fab.NewEvent()
	if err := ctrl.LNAConfigure(fem.TimerActivation(timer, 100, 200, 0x01), fem.Signal(rxDone)); err != nil {
		log.Fatal(err)
	}
	if err := ctrl.PAConfigure(fem.TimerActivation(timer, 300, 400, 0x02), fem.Signal(txDone)); err != nil {
		log.Fatal(err)
	}

	split, err := ctrl.SplitPower(14)
	if err != nil {
		log.Printf("power split degraded: %s", err)
	}
	log.Printf("requested 14 dBm -> radio %d dBm + FEM %d dB", split.RadioTxPower, split.FEMGain)
	if err := ctrl.PAGainSet(split.FEMGain); err != nil {
		log.Fatal(err)
	}

	// The caller owns the timer: start it and let the counter run past the
	// scheduled windows. The control lines switch with no software in the
	// path.
	timer.Start()
	timer.Advance(200)
	log.Printf("counter=200: RXEN active=%v TXEN active=%v", rxen.Level(), txen.Level())
	fab.Publish(rxDone) // radio signals end of reception
	timer.Advance(400)
	log.Printf("counter=400: RXEN active=%v TXEN active=%v", rxen.Level(), txen.Level())
	fab.Publish(txDone) // radio signals end of transmission

	// Radio operation finished: force both paths inactive, then release the
	// hardware bindings. Gain survives for the next exchange.
	ctrl.DeactivateNow(hal.All)
	ctrl.Cleanup()
	log.Printf("after cleanup: bindings=%v gain=%d dB", ctrl.Bindings(), ctrl.PAIsConfigured())
}
