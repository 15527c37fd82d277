package sheet

import (
	"golang.org/x/exp/slices"
)

type observer struct {
	fn func()
}

type observers struct {
	list []*observer
}

func (obs *observers) add(fn func()) func() {
	o := &observer{fn}
	obs.list = append(obs.list, o)
	return func() {
		if i := slices.Index(obs.list, o); i >= 0 {
			obs.list = slices.Delete(obs.list, i, i+1)
		}
	}
}

func (obs *observers) notify() {
	for _, o := range slices.Clone(obs.list) {
		o.fn()
	}
}
