package proctor_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quickhire-proctor/internal/proctor"
)

// fakeFullscreen полноэкранный режим с ручным управлением уведомлениями:
// нужен для проверки резервного опроса при пропущенном уведомлении
type fakeFullscreen struct {
	mu     sync.Mutex
	active bool
	fns    map[int]func(bool)
	nextID int
}

func newFakeFullscreen() *fakeFullscreen {
	return &fakeFullscreen{fns: make(map[int]func(bool))}
}

func (f *fakeFullscreen) Supported() bool { return true }

func (f *fakeFullscreen) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *fakeFullscreen) Request() error {
	f.setAndNotify(true)
	return nil
}

func (f *fakeFullscreen) Exit() error {
	f.setAndNotify(false)
	return nil
}

func (f *fakeFullscreen) OnChange(fn func(bool)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	f.fns[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.fns, id)
	}
}

func (f *fakeFullscreen) setAndNotify(active bool) {
	f.mu.Lock()
	f.active = active
	fns := make([]func(bool), 0, len(f.fns))
	for _, fn := range f.fns {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(active)
	}
}

// setSilently меняет состояние без уведомления — пропущенное событие
func (f *fakeFullscreen) setSilently(active bool) {
	f.mu.Lock()
	f.active = active
	f.mu.Unlock()
}

// notifyAgain повторяет уведомление с текущим состоянием
func (f *fakeFullscreen) notifyAgain() {
	f.mu.Lock()
	active := f.active
	fns := make([]func(bool), 0, len(f.fns))
	for _, fn := range f.fns {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(active)
	}
}

func newTestPause(t *testing.T) (*fakeFullscreen, *proctor.PauseController, *atomic.Int32, *atomic.Int32) {
	t.Helper()
	fs := newFakeFullscreen()
	var pauses, resumes atomic.Int32
	ctl := proctor.NewPauseController(fs, 20*time.Millisecond,
		func() { pauses.Add(1) },
		func() { resumes.Add(1) })
	ctl.Start()
	t.Cleanup(ctl.Stop)
	return fs, ctl, &pauses, &resumes
}

func TestPauseControllerTransitions(t *testing.T) {
	fs, ctl, pauses, resumes := newTestPause(t)

	require.Equal(t, proctor.StateNotEntered, ctl.State())

	ctl.MarkEntered()
	require.Equal(t, proctor.StateCompliant, ctl.State())

	fs.Request()
	fs.Exit()
	require.Equal(t, proctor.StatePaused, ctl.State())
	require.Equal(t, int32(1), pauses.Load())

	fs.Request()
	require.Equal(t, proctor.StateCompliant, ctl.State())
	require.Equal(t, int32(1), resumes.Load())
}

func TestPauseControllerExitBeforeEntryIsNoop(t *testing.T) {
	fs, ctl, pauses, _ := newTestPause(t)

	// выход из полноэкранного режима до прохождения шлюза — не пауза
	fs.Exit()
	require.Equal(t, proctor.StateNotEntered, ctl.State())
	require.Equal(t, int32(0), pauses.Load())
}

func TestPauseControllerRepeatedNotificationsIdempotent(t *testing.T) {
	fs, ctl, pauses, resumes := newTestPause(t)
	ctl.MarkEntered()

	fs.Exit()
	fs.notifyAgain()
	fs.notifyAgain()
	require.Equal(t, proctor.StatePaused, ctl.State())
	require.Equal(t, int32(1), pauses.Load())

	fs.Request()
	fs.notifyAgain()
	fs.notifyAgain()
	require.Equal(t, proctor.StateCompliant, ctl.State())
	require.Equal(t, int32(1), resumes.Load())
}

func TestPauseControllerFallbackPoll(t *testing.T) {
	fs, ctl, _, resumes := newTestPause(t)
	ctl.MarkEntered()
	fs.Exit()
	require.Equal(t, proctor.StatePaused, ctl.State())

	// уведомление о возврате потеряно, режим восстановлен молча:
	// резервный опрос должен обнаружить это
	fs.setSilently(true)
	require.Eventually(t, func() bool {
		return ctl.State() == proctor.StateCompliant
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, int32(1), resumes.Load())
}

func TestPauseControllerPauseDuration(t *testing.T) {
	fs, ctl, _, _ := newTestPause(t)
	ctl.MarkEntered()

	require.Zero(t, ctl.PauseDuration())

	fs.Exit()
	time.Sleep(30 * time.Millisecond)
	require.Greater(t, ctl.PauseDuration(), time.Duration(0))

	fs.Request()
	require.Zero(t, ctl.PauseDuration())
}

func TestPauseControllerMarkEnteredOnlyFromNotEntered(t *testing.T) {
	fs, ctl, _, _ := newTestPause(t)
	ctl.MarkEntered()
	fs.Exit()

	// повторная отметка входа не выводит из паузы
	ctl.MarkEntered()
	require.Equal(t, proctor.StatePaused, ctl.State())
}
