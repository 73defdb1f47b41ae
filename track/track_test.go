package track

import "testing"

func TestNewTrackClampsPublisherPriority(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{127.4, 127},
		{127.6, 128},
		{255, 255},
		{1000, 255},
	}
	for _, c := range cases {
		tr := NewTrack(FullTrackName{Name: "t"}, ForwardingSubgroup, nil, c.in, nil)
		if tr.PublisherPriority != c.want {
			t.Fatalf("NewTrack(priority=%v).PublisherPriority = %d, want %d", c.in, tr.PublisherPriority, c.want)
		}
	}
}

func TestTrackPublisherPriorityTransportMatchesMapping(t *testing.T) {
	t.Parallel()
	tr := NewTrack(FullTrackName{Name: "t"}, ForwardingSubgroup, nil, 42, nil)
	want := TransportPriority(42)
	if got := tr.PublisherPriorityTransport(); got != want {
		t.Fatalf("PublisherPriorityTransport() = %d, want %d", got, want)
	}
}

func TestNewTrackSourceRequiresAFacet(t *testing.T) {
	t.Parallel()
	if _, err := NewTrackSource(nil, nil); err != ErrNoFacet {
		t.Fatalf("NewTrackSource(nil, nil) err = %v, want ErrNoFacet", err)
	}
}
