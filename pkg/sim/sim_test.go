package sim

import "testing"

func TestPublishTriggersEnabledChannels(t *testing.T) {
	fab := NewFabric()
	fired := 0
	task := fab.RegisterTask(func() { fired++ })
	ev := fab.NewEvent()

	ch, err := fab.AllocChannel()
	if err != nil {
		t.Fatalf("AllocChannel: %v", err)
	}
	if err := fab.Connect(ch, ev, task); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	fab.Publish(ev)
	if fired != 0 {
		t.Fatal("disabled channel triggered")
	}

	if err := fab.Enable(ch); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	fab.Publish(ev)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}

func TestPublishCascades(t *testing.T) {
	fab := NewFabric()
	second := fab.NewEvent()
	order := []string{}

	chA, _ := fab.AllocChannel()
	taskA := fab.RegisterTask(func() {
		order = append(order, "a")
		fab.Publish(second)
	})
	chB, _ := fab.AllocChannel()
	taskB := fab.RegisterTask(func() { order = append(order, "b") })

	first := fab.NewEvent()
	if err := fab.Connect(chA, first, taskA); err != nil {
		t.Fatal(err)
	}
	if err := fab.Connect(chB, second, taskB); err != nil {
		t.Fatal(err)
	}
	fab.Enable(chA)
	fab.Enable(chB)

	fab.Publish(first)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("dispatch order = %v, want [a b]", order)
	}
}

func TestGroupDisableTask(t *testing.T) {
	fab := NewFabric()
	chA, _ := fab.AllocChannel()
	chB, _ := fab.AllocChannel()
	ev := fab.NewEvent()
	noop := fab.RegisterTask(func() {})
	fab.Connect(chA, ev, noop)
	fab.Connect(chB, ev, noop)
	fab.Enable(chA)
	fab.Enable(chB)

	fab.GroupAdd(1, chA)
	fab.GroupAdd(1, chB)
	task, err := fab.GroupDisableTask(1)
	if err != nil {
		t.Fatalf("GroupDisableTask: %v", err)
	}

	stop := fab.NewEvent()
	chStop, _ := fab.AllocChannel()
	fab.Connect(chStop, stop, task)
	fab.Enable(chStop)

	fab.Publish(stop)
	if fab.Enabled(chA) || fab.Enabled(chB) {
		t.Error("group members still enabled after disable trigger")
	}
	if !fab.Enabled(chStop) {
		t.Error("trigger channel disabled although not a group member")
	}
}

func TestTimerCompareOrdering(t *testing.T) {
	fab := NewFabric()
	timer := NewTimer(fab)
	timer.Start()

	var order []uint32
	arm := func(cc uint8, value uint32) {
		ev, err := timer.SetCompare(cc, value)
		if err != nil {
			t.Fatalf("SetCompare: %v", err)
		}
		ch, _ := fab.AllocChannel()
		v := value
		fab.Connect(ch, ev, fab.RegisterTask(func() { order = append(order, v) }))
		fab.Enable(ch)
	}
	arm(1, 300)
	arm(0, 100)
	arm(2, 200)

	timer.Advance(400)
	if len(order) != 3 || order[0] != 100 || order[1] != 200 || order[2] != 300 {
		t.Fatalf("firing order = %v, want [100 200 300]", order)
	}
	if timer.Counter() != 400 {
		t.Errorf("counter = %d, want 400", timer.Counter())
	}
}

func TestTimerStoppedDoesNotFire(t *testing.T) {
	fab := NewFabric()
	timer := NewTimer(fab)

	fired := false
	ev, _ := timer.SetCompare(0, 50)
	ch, _ := fab.AllocChannel()
	fab.Connect(ch, ev, fab.RegisterTask(func() { fired = true }))
	fab.Enable(ch)

	timer.Advance(100)
	if fired {
		t.Error("stopped timer fired a compare")
	}

	// Compare values already passed stay silent after a late start.
	timer.Start()
	timer.Advance(100)
	if fired {
		t.Error("compare fired although the counter already passed it")
	}
}

func TestPinTransitions(t *testing.T) {
	fab := NewFabric()
	pin := NewPin("TXEN", fab)

	pin.Drive(true)
	pin.Drive(true)
	pin.Drive(false)
	if pin.Rises() != 1 || pin.Falls() != 1 {
		t.Errorf("rises=%d falls=%d, want 1/1", pin.Rises(), pin.Falls())
	}
}
