package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/rmsheet/internal/data"
)

func TestPropertyBus_Dispatch(t *testing.T) {
	var bus PropertyBus
	var order []string

	bus.Subscribe(PropLevel, func(e Event) { order = append(order, "level:"+e.Name) })
	bus.SubscribePrefix(PropStatBonus, func(e Event) { order = append(order, "prefix:"+e.Name) })
	bus.SubscribeAll(func(e Event) { order = append(order, "all:"+e.Name) })

	bus.Emit(PropLevel, 1, 2)
	bus.Emit(StatProperty(PropStatBonus, data.Quickness), 0, 5)

	assert.Equal(t, []string{
		"level:level",
		"all:level",
		"prefix:statBonusQU",
		"all:statBonusQU",
	}, order)
}

func TestPropertyBus_SkipsUnchanged(t *testing.T) {
	var bus PropertyBus
	n := 0
	bus.SubscribeAll(func(Event) { n++ })

	bus.Emit(PropHitPoints, 10, 10)
	assert.Zero(t, n)

	// collection events carry no values and always fire
	bus.Emit(PropSkills, nil, nil)
	bus.Emit(PropSkills, nil, nil)
	assert.Equal(t, 2, n)
}

func TestPropertyBus_Unsubscribe(t *testing.T) {
	var bus PropertyBus
	var got []int

	var off func()
	off = bus.Subscribe(PropLevel, func(e Event) {
		got = append(got, e.New.(int))
		off()
	})
	bus.Subscribe(PropLevel, func(e Event) { got = append(got, -e.New.(int)) })

	bus.Emit(PropLevel, 1, 2)
	bus.Emit(PropLevel, 2, 3)
	assert.Equal(t, []int{2, -2, -3}, got)
}
