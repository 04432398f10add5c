package loader

import (
	"testing"

	"github.com/vecraster/vgfx/paint"
)

// fakeFrameSeeker is a minimal FrameSeeker test double: a fixed frame
// count and duration, tracking the last frame seeked to.
type fakeFrameSeeker struct {
	total, dur, cur float64
	frameErr        error
}

func (f *fakeFrameSeeker) Open(string) (bool, error)            { return true, nil }
func (f *fakeFrameSeeker) OpenBytes([]byte, bool) (bool, error) { return true, nil }
func (f *fakeFrameSeeker) Read() error                          { return nil }
func (f *fakeFrameSeeker) Close() error                         { return nil }
func (f *fakeFrameSeeker) Scene() *paint.Paint                  { return nil }
func (f *fakeFrameSeeker) Bitmap() *paint.Bitmap                { return nil }
func (f *fakeFrameSeeker) TotalFrame() float64                  { return f.total }
func (f *fakeFrameSeeker) CurFrame() float64                    { return f.cur }
func (f *fakeFrameSeeker) Duration() float64                    { return f.dur }
func (f *fakeFrameSeeker) Frame(n float64) error {
	if f.frameErr != nil {
		return f.frameErr
	}
	f.cur = n
	return nil
}

func TestAnimationFrameClampsToSegment(t *testing.T) {
	seeker := &fakeFrameSeeker{total: 100, dur: 2}
	pic := paint.NewPicture(0, 0, 64, 64)
	anim := NewAnimation(pic, seeker)

	if anim.TotalFrame() != 100 {
		t.Errorf("TotalFrame() = %v, want 100", anim.TotalFrame())
	}

	if err := anim.Segment(10, 50); err != nil {
		t.Fatalf("Segment() = %v", err)
	}

	pic.Dirty = 0
	if err := anim.Frame(5); err != nil {
		t.Fatalf("Frame(5) = %v", err)
	}
	if seeker.cur != 10 {
		t.Errorf("seeker.cur = %v, want clamped to segment start 10", seeker.cur)
	}
	if pic.Dirty&paint.DirtyPath == 0 {
		t.Error("Frame() should mark the picture's path dirty")
	}

	pic.Dirty = 0
	if err := anim.Frame(90); err != nil {
		t.Fatalf("Frame(90) = %v", err)
	}
	if seeker.cur != 50 {
		t.Errorf("seeker.cur = %v, want clamped to segment end 50", seeker.cur)
	}
	if pic.Dirty&paint.DirtyPath == 0 {
		t.Error("Frame() should mark the picture's path dirty")
	}
}

func TestAnimationSegmentRejectsInvalidRange(t *testing.T) {
	seeker := &fakeFrameSeeker{total: 100}
	anim := NewAnimation(paint.NewPicture(0, 0, 1, 1), seeker)

	if err := anim.Segment(50, 10); err == nil {
		t.Error("Segment(50, 10) should reject begin >= end")
	}
	if err := anim.Segment(-1, 10); err == nil {
		t.Error("Segment(-1, 10) should reject a negative begin")
	}
	if err := anim.Segment(0, 200); err == nil {
		t.Error("Segment(0, 200) should reject an end beyond TotalFrame()")
	}
}

func TestAnimationCurFrameAndDuration(t *testing.T) {
	seeker := &fakeFrameSeeker{total: 24, dur: 1, cur: 3}
	anim := NewAnimation(paint.NewPicture(0, 0, 1, 1), seeker)

	if anim.CurFrame() != 3 {
		t.Errorf("CurFrame() = %v, want 3", anim.CurFrame())
	}
	if anim.Duration() != 1 {
		t.Errorf("Duration() = %v, want 1", anim.Duration())
	}
}
