package editor

import (
	"testing"
	"time"
)

func TestNewContext(t *testing.T) {
	c := NewContext()
	if c.Mode() != ModeNormal {
		t.Errorf("Mode() = %q, want %q", c.Mode(), ModeNormal)
	}
	if len(c.Buffers()) != 1 {
		t.Fatalf("Buffers() len = %d, want 1", len(c.Buffers()))
	}
	if c.CurrentBuffer() == nil {
		t.Fatal("CurrentBuffer() = nil")
	}
	if !c.SidebarVisible {
		t.Error("sidebar should start visible")
	}
}

func TestBufferSwitching(t *testing.T) {
	c := NewContext()
	second := NewBufferFromString("two")
	c.AddBuffer(second)
	if c.CurrentBuffer() != second {
		t.Fatal("AddBuffer should make the new buffer current")
	}

	c.SwitchBuffer(0)
	if c.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", c.CurrentIndex())
	}
	c.SwitchBuffer(5)
	if c.CurrentIndex() != 0 {
		t.Errorf("out-of-range switch moved index to %d", c.CurrentIndex())
	}

	c.AdvanceBuffer(1)
	if c.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", c.CurrentIndex())
	}
	c.AdvanceBuffer(1)
	if c.CurrentIndex() != 0 {
		t.Errorf("forward wrap: CurrentIndex() = %d, want 0", c.CurrentIndex())
	}
	c.AdvanceBuffer(-1)
	if c.CurrentIndex() != 1 {
		t.Errorf("backward wrap: CurrentIndex() = %d, want 1", c.CurrentIndex())
	}
}

func TestNumericPrefixExpiry(t *testing.T) {
	c := NewContext(WithPrefixTimeout(10 * time.Millisecond))
	c.PushDigit('1')
	c.PushDigit('2')
	if got := c.NumericPrefix(); got != "12" {
		t.Fatalf("NumericPrefix() = %q, want %q", got, "12")
	}

	c.ExpireTransients(time.Now())
	if got := c.NumericPrefix(); got != "12" {
		t.Errorf("prefix expired too early: %q", got)
	}

	c.ExpireTransients(time.Now().Add(50 * time.Millisecond))
	if got := c.NumericPrefix(); got != "" {
		t.Errorf("prefix survived timeout: %q", got)
	}
}

func TestTakePrefix(t *testing.T) {
	c := NewContext()
	c.PushDigit('4')
	if got := c.TakePrefix(); got != "4" {
		t.Errorf("TakePrefix() = %q, want %q", got, "4")
	}
	if got := c.TakePrefix(); got != "" {
		t.Errorf("second TakePrefix() = %q, want empty", got)
	}
}

func TestClearTransientInput(t *testing.T) {
	c := NewContext()
	c.PushDigit('7')
	c.WordArm = true
	c.CommandLine = "wq"
	c.ClearTransientInput()
	if c.NumericPrefix() != "" || c.WordArm || c.CommandLine != "" {
		t.Error("ClearTransientInput left state behind")
	}
}

func TestActivityLogBounded(t *testing.T) {
	c := NewContext()
	for _, msg := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		c.LogActivity(msg)
	}
	got := c.Activity()
	if len(got) != 5 {
		t.Fatalf("Activity() len = %d, want 5", len(got))
	}
	if got[0] != "c" || got[4] != "g" {
		t.Errorf("Activity() = %v, want oldest %q .. newest %q", got, "c", "g")
	}
}

func TestTakeSnapshotSkipsUnchanged(t *testing.T) {
	c := NewContext()
	c.CurrentBuffer().SetLine(0, "hello")
	if !c.TakeSnapshot() {
		t.Fatal("first snapshot should be taken")
	}
	if c.TakeSnapshot() {
		t.Error("unchanged content should not be snapshotted again")
	}
	c.CurrentBuffer().SetLine(0, "world")
	if !c.TakeSnapshot() {
		t.Error("changed content should be snapshotted")
	}
	if got := len(c.Snapshots()); got != 2 {
		t.Errorf("Snapshots() len = %d, want 2", got)
	}
}

func TestTakeSnapshotBounded(t *testing.T) {
	c := NewContext()
	for i := 0; i < 40; i++ {
		c.CurrentBuffer().SetLine(0, string(rune('a'+i)))
		c.TakeSnapshot()
	}
	if got := len(c.Snapshots()); got != 32 {
		t.Errorf("Snapshots() len = %d, want 32", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := NewContext()
	c.CurrentBuffer().SetLine(0, "before")
	c.TakeSnapshot()
	c.CurrentBuffer().SetLine(0, "after")
	if got := c.Snapshots()[0][0]; got != "before" {
		t.Errorf("snapshot mutated with buffer: %q", got)
	}
}

func TestStartSearch(t *testing.T) {
	c := NewContext()
	c.AddBuffer(NewBufferFromString("Alpha\nbeta\nGAMMA alpha"))

	c.StartSearch("alpha")
	if c.Mode() != ModeSearch {
		t.Fatalf("Mode() = %q, want %q", c.Mode(), ModeSearch)
	}
	want := []int{0, 2}
	if len(c.Search.Results) != len(want) {
		t.Fatalf("Results = %v, want %v", c.Search.Results, want)
	}
	for i := range want {
		if c.Search.Results[i] != want[i] {
			t.Errorf("Results[%d] = %d, want %d", i, c.Search.Results[i], want[i])
		}
	}
}

func TestStartSearchNoMatches(t *testing.T) {
	c := NewContext()
	c.StartSearch("nothing")
	if c.Mode() != ModeNormal {
		t.Errorf("Mode() = %q, want %q after empty search", c.Mode(), ModeNormal)
	}
	if c.Status() == "" {
		t.Error("empty search should set a status message")
	}
}

func TestToggleZen(t *testing.T) {
	c := NewContext()
	c.SidebarVisible = true
	c.SetMode(ModeFileBrowse)

	c.ToggleZen()
	if !c.Zen || c.SidebarVisible {
		t.Error("zen on should hide the sidebar")
	}
	if c.Mode() != ModeNormal {
		t.Errorf("Mode() = %q, want %q after entering zen", c.Mode(), ModeNormal)
	}

	c.ToggleZen()
	if c.Zen || !c.SidebarVisible {
		t.Error("zen off should restore sidebar visibility")
	}
}

func TestHelpExpiry(t *testing.T) {
	c := NewContext()
	c.ShowHelp()
	if !c.HelpVisible {
		t.Fatal("help should be visible after ShowHelp")
	}
	c.ExpireTransients(time.Now().Add(10 * time.Second))
	if c.HelpVisible {
		t.Error("help should expire")
	}
}

func TestQuitRequest(t *testing.T) {
	c := NewContext()
	if c.QuitRequested() {
		t.Fatal("fresh context should not request quit")
	}
	c.RequestQuit()
	if !c.QuitRequested() {
		t.Error("RequestQuit should set the flag")
	}
}
