package anim

import "github.com/steipete/memegrep/internal/imaging"

// Player owns the frames and cursor of one display slot. Stop must run before
// the frames are replaced; Play does that itself.
type Player struct {
	key    string
	sched  *Scheduler
	show   func(imaging.Frame)
	frames []imaging.Frame
	cursor int
}

func NewPlayer(key string, sched *Scheduler, show func(imaging.Frame)) *Player {
	return &Player{key: key, sched: sched, show: show}
}

func (p *Player) Key() string { return p.key }

// Play shows the first frame and, for more than one frame, starts looping.
func (p *Player) Play(frames []imaging.Frame) {
	p.Stop()
	if len(frames) == 0 {
		return
	}
	p.frames = frames
	p.cursor = 0
	if len(frames) == 1 {
		p.show(frames[0])
		return
	}
	p.step()
}

func (p *Player) step() {
	frame := p.frames[p.cursor]
	p.show(frame)
	p.cursor = (p.cursor + 1) % len(p.frames)
	delay := frame.Delay
	if delay <= 0 {
		delay = imaging.DefaultDelay
	}
	p.sched.Schedule(p.key, delay)
}

// Handle advances exactly one frame for a live tick addressed to this player.
func (p *Player) Handle(t Tick) bool {
	if t.Key != p.key || len(p.frames) < 2 {
		return false
	}
	if !p.sched.Accept(t) {
		return false
	}
	p.step()
	return true
}

// Stop cancels the pending reschedule and drops the frames.
func (p *Player) Stop() {
	p.sched.Cancel(p.key)
	p.frames = nil
	p.cursor = 0
}

func (p *Player) Running() bool {
	return len(p.frames) > 1 && p.sched.Pending(p.key)
}

// Cursor is the index of the frame that will be shown next.
func (p *Player) Cursor() int { return p.cursor }

func (p *Player) FrameCount() int { return len(p.frames) }
