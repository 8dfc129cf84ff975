package multiplayer

import "testing"

func TestChannelSessionDropsOldestWhenFull(t *testing.T) {
	s := NewChannelSession("a", 2)
	s.Send(NoticeEvent{Message: "1"})
	s.Send(NoticeEvent{Message: "2"})
	s.Send(NoticeEvent{Message: "3"})

	first := (<-s.Events()).(NoticeEvent)
	second := (<-s.Events()).(NoticeEvent)
	if first.Message != "2" || second.Message != "3" {
		t.Errorf("received %q, %q, expected 2, 3", first.Message, second.Message)
	}
}

func TestChannelSessionClose(t *testing.T) {
	s := NewChannelSession("a", 1)
	s.Close()
	s.Close() // safe twice

	select {
	case <-s.Done():
	default:
		t.Fatal("Done() should be closed")
	}

	s.Send(NoticeEvent{Message: "late"})
	select {
	case evt := <-s.Events():
		t.Errorf("closed session received %v", evt)
	default:
	}
}

func TestSessionRegistryBroadcast(t *testing.T) {
	r := NewSessionRegistry()
	a := NewChannelSession("b-session", 4)
	b := NewChannelSession("a-session", 4)
	r.Register(a)
	r.Register(b)

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, expected 2", r.Count())
	}
	if ids := r.IDs(); ids[0] != "a-session" || ids[1] != "b-session" {
		t.Errorf("IDs() = %v, expected sorted", ids)
	}

	r.Broadcast(ShutdownEvent{Reason: "maintenance"})
	for _, s := range []*ChannelSession{a, b} {
		select {
		case evt := <-s.Events():
			if _, ok := evt.(ShutdownEvent); !ok {
				t.Errorf("session %s got %T, expected ShutdownEvent", s.ID(), evt)
			}
		default:
			t.Errorf("session %s got nothing", s.ID())
		}
	}

	r.Unregister("a-session")
	if _, ok := r.Get("a-session"); ok {
		t.Error("Get after Unregister should fail")
	}
}

func TestModeFor(t *testing.T) {
	if ModeFor("pong") != MatchModeVsCPU {
		t.Error("pong should be played against the CPU")
	}
	if m := NewMatch("m1", "bomber", "s1"); m.Mode() != MatchModeSolo || len(m.Sessions()) != 1 {
		t.Errorf("bomber match = %v with %d sessions", m.Mode(), len(m.Sessions()))
	}
}
