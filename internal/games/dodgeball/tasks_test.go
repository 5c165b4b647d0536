package dodgeball

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/tui-dodgeball/internal/config"
	"github.com/vovakirdan/tui-dodgeball/internal/core"
	"github.com/vovakirdan/tui-dodgeball/internal/link"
	"github.com/vovakirdan/tui-dodgeball/internal/link/mocks"
)

func TestPollLinkIdleDoesNotRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	tr.EXPECT().ByteReady().Return(false)

	w := newTestWorld(t, tr, nil)
	w.PollLink()

	if w.State.Phase != PhaseSetup {
		t.Errorf("Phase = %v, expected setup", w.State.Phase)
	}
}

func TestPollLinkConsumesOneByte(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	gomock.InOrder(
		tr.EXPECT().ByteReady().Return(true),
		tr.EXPECT().ReceiveByte().Return(link.SideAttack),
	)

	w := newTestWorld(t, tr, nil)
	w.PollLink()

	if w.Player.Field != RoleDefend || w.State.Side != link.SideDefend {
		t.Errorf("role = %v side = %c, expected defend/D", w.Player.Field, w.State.Side)
	}
}

func TestSendFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	tr.EXPECT().SendByte(link.SideAttack).Return(link.ErrQueueFull)

	w := newTestWorld(t, tr, nil)
	w.Confirm()

	if w.State.Phase != PhasePlaying || w.Player.Field != RoleAttack {
		t.Errorf("phase = %v role = %v after failed send, expected playing/attack", w.State.Phase, w.Player.Field)
	}
}

func TestEscapedBallIsSentInSenderFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	gomock.InOrder(
		tr.EXPECT().SendByte(link.SideAttack).Return(nil),
		tr.EXPECT().SendByte(byte(FieldWidth)).Return(nil),
	)

	w := newTestWorld(t, tr, nil)
	w.Confirm()
	for i := 0; i < FieldWidth; i++ {
		w.Player.Move(w.Surface(), DirRight)
	}
	if !w.Fire() {
		t.Fatal("Fire() = false")
	}
	for i := 0; i < AttackSpawnRow+2; i++ {
		w.AdvanceBalls()
	}
}

func TestDefenderAnnouncesRoundOver(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	gomock.InOrder(
		tr.EXPECT().SendByte(link.SideDefend).Return(nil),
		tr.EXPECT().SendByte(link.RoundOver).Return(nil),
	)

	w := newTestWorld(t, tr, nil)
	w.ToggleSide()
	w.Confirm()

	hitDefender(t, w, CenterPos)
	hitDefender(t, w, CenterPos)

	if w.Player.Field != RoleAttack {
		t.Errorf("role after round one = %v, expected attack", w.Player.Field)
	}
}

func TestTasksTable(t *testing.T) {
	ea, _ := link.Pipe()
	w := newTestWorld(t, ea, nil)
	timing := config.DefaultDodgeballConfig().Timing

	tasks := Tasks(w, timing, core.NewInputQueue(), PresenterFunc(func(Frame) {}))

	expected := []struct {
		name   string
		period uint64
	}{
		{TaskDuration, 1},
		{TaskInput, 5},
		{TaskDisplay, 10},
		{TaskRamp, 2},
		{TaskBall, 250},
		{TaskLink, 5},
	}
	if len(tasks) != len(expected) {
		t.Fatalf("len(tasks) = %d, expected %d", len(tasks), len(expected))
	}
	for i, e := range expected {
		if tasks[i].Name != e.name || tasks[i].Period != e.period {
			t.Errorf("task %d = %s/%d, expected %s/%d", i, tasks[i].Name, tasks[i].Period, e.name, e.period)
		}
	}
}
