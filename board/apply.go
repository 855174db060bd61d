package board

import "fmt"

type pendingMove struct {
	newHead     int32
	ate         bool
	outOfBounds bool
}

// Apply runs one deterministic rules step: every live snake advances per
// action, health and hazard damage are applied, food is consumed, and
// simultaneous eliminations (out-of-bounds, body collision, head-to-head)
// are resolved before dead snakes are dropped from the result. Every
// elimination this step is decided against the same post-advance boards: a
// snake that starves or takes fatal hazard damage this step still blocks
// other snakes with its body, exactly as one that survives does, matching
// the ruleset every elimination is checked against one frozen turn rather
// than against each other's partially-applied results. Apply never mutates
// its receiver; it always returns a new Board.
func (b Board) Apply(a Action) (Board, error) {
	next := b // arrays copy by value: no heap allocation here

	for id := 0; id < MaxSnakes; id++ {
		if _, ok := a.Get(id); !ok {
			continue
		}
		if idx := b.SnakeByID(id); idx < 0 || !b.Snakes[idx].Alive {
			return Board{}, fmt.Errorf("action names snake %d, which is not alive: %w", id, ErrInvalidAction)
		}
	}

	var pending [MaxSnakes]pendingMove
	for i := 0; i < next.NumSnakes; i++ {
		s := &next.Snakes[i]
		if !s.Alive {
			continue
		}
		mv, ok := a.Get(s.ID)
		if !ok {
			return Board{}, fmt.Errorf("snake %d has no move in action: %w", s.ID, ErrInvalidAction)
		}
		head, inBounds := b.neighborCell(s.Body[0], mv)
		if !inBounds {
			pending[i] = pendingMove{outOfBounds: true}
			continue
		}
		pending[i] = pendingMove{newHead: head, ate: b.isFood(head)}
	}

	var dead [MaxSnakes]bool

	for i := 0; i < next.NumSnakes; i++ {
		s := &next.Snakes[i]
		if !s.Alive {
			continue
		}
		p := pending[i]
		if p.outOfBounds {
			dead[i] = true
			continue
		}
		s.advance(p.newHead, p.ate)
		s.Health--
		if next.IsHazard(p.newHead) {
			s.Health -= next.HazardDamage
		}
		if p.ate {
			s.Health = 100
			next.removeFood(p.newHead)
		}
		if s.Health <= 0 {
			dead[i] = true
		}
	}

	// Body-collision and head-to-head checks run against every snake that
	// advanced this step, including ones already marked dead[i] above
	// (starvation, hazard damage): their post-advance bodies still block,
	// since every elimination this step is decided simultaneously against
	// one frozen set of post-advance boards. Only out-of-bounds snakes,
	// which never advanced, are excluded as blockers.
	for i := 0; i < next.NumSnakes; i++ {
		si := &next.Snakes[i]
		if !si.Alive || pending[i].outOfBounds {
			continue
		}
		head := si.Body[0]
		for j := 0; j < next.NumSnakes; j++ {
			sj := &next.Snakes[j]
			if !sj.Alive || pending[j].outOfBounds {
				continue
			}
			for k := 1; k < sj.BodyLen; k++ {
				if sj.Body[k] == head {
					dead[i] = true
				}
			}
		}
	}

	for i := 0; i < next.NumSnakes; i++ {
		si := &next.Snakes[i]
		if !si.Alive || pending[i].outOfBounds {
			continue
		}
		for j := i + 1; j < next.NumSnakes; j++ {
			sj := &next.Snakes[j]
			if !sj.Alive || pending[j].outOfBounds {
				continue
			}
			if si.Body[0] != sj.Body[0] {
				continue
			}
			switch {
			case si.BodyLen > sj.BodyLen:
				dead[j] = true
			case sj.BodyLen > si.BodyLen:
				dead[i] = true
			default:
				dead[i] = true
				dead[j] = true
			}
		}
	}

	for i := 0; i < next.NumSnakes; i++ {
		if dead[i] {
			next.Snakes[i].Alive = false
		}
	}

	return next, nil
}
