package control

import "testing"

func TestClientSetupRoundTrip(t *testing.T) {
	t.Parallel()
	want := ClientSetup{Versions: []uint64{0xff000001, 0xff000002}, Path: "/a/b", HasPath: true, MaxRequestID: 42}
	got, err := DecodeClientSetup(EncodeClientSetup(want))
	if err != nil {
		t.Fatal(err)
	}
	if got.Path != want.Path || got.HasPath != want.HasPath || got.MaxRequestID != want.MaxRequestID {
		t.Fatalf("got = %+v, want %+v", got, want)
	}
	if len(got.Versions) != len(want.Versions) {
		t.Fatalf("Versions = %v, want %v", got.Versions, want.Versions)
	}
	for i := range want.Versions {
		if got.Versions[i] != want.Versions[i] {
			t.Fatalf("Versions[%d] = %d, want %d", i, got.Versions[i], want.Versions[i])
		}
	}
}

func TestClientSetupWithoutPath(t *testing.T) {
	t.Parallel()
	want := ClientSetup{Versions: []uint64{Version}}
	got, err := DecodeClientSetup(EncodeClientSetup(want))
	if err != nil {
		t.Fatal(err)
	}
	if got.HasPath {
		t.Fatalf("HasPath = true, want false")
	}
}

func TestServerSetupRoundTrip(t *testing.T) {
	t.Parallel()
	want := ServerSetup{SelectedVersion: Version, MaxRequestID: 100}
	got, err := DecodeServerSetup(EncodeServerSetup(want))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got = %+v, want %+v", got, want)
	}
}

func TestSubscribeRoundTripEachFilterType(t *testing.T) {
	t.Parallel()
	base := Subscribe{
		RequestID:  7,
		Namespace:  []string{"ns1", "ns2"},
		TrackName:  "video",
		Priority:   128,
		GroupOrder: GroupOrderDescending,
		Forward:    1,
	}

	cases := []Subscribe{
		withFilter(base, FilterNextGroupStart),
		withFilter(base, FilterLatestObject),
		withFilterRange(base, FilterAbsoluteStart, 3, 9, 0),
		withFilterRange(base, FilterAbsoluteRange, 3, 9, 20),
	}

	for _, want := range cases {
		got, err := DecodeSubscribe(EncodeSubscribe(want))
		if err != nil {
			t.Fatal(err)
		}
		if got.RequestID != want.RequestID || got.TrackName != want.TrackName ||
			got.FilterType != want.FilterType || got.StartGroup != want.StartGroup ||
			got.StartObj != want.StartObj || got.EndGroup != want.EndGroup {
			t.Fatalf("got = %+v, want %+v", got, want)
		}
		if len(got.Namespace) != len(want.Namespace) {
			t.Fatalf("Namespace = %v, want %v", got.Namespace, want.Namespace)
		}
	}
}

func withFilter(s Subscribe, filter uint64) Subscribe {
	s.FilterType = filter
	return s
}

func withFilterRange(s Subscribe, filter, start, obj, end uint64) Subscribe {
	s.FilterType = filter
	s.StartGroup = start
	s.StartObj = obj
	s.EndGroup = end
	return s
}

func TestSubscribeOKRoundTripWithAndWithoutContent(t *testing.T) {
	t.Parallel()
	withContent := SubscribeOK{RequestID: 1, TrackAlias: 2, Expires: 0, GroupOrder: GroupOrderAscending, ContentExists: true, LargestGroup: 5, LargestObj: 9}
	got, err := DecodeSubscribeOK(EncodeSubscribeOK(withContent))
	if err != nil {
		t.Fatal(err)
	}
	if got != withContent {
		t.Fatalf("got = %+v, want %+v", got, withContent)
	}

	withoutContent := SubscribeOK{RequestID: 1, TrackAlias: 2, GroupOrder: GroupOrderAscending}
	got2, err := DecodeSubscribeOK(EncodeSubscribeOK(withoutContent))
	if err != nil {
		t.Fatal(err)
	}
	if got2.ContentExists || got2.LargestGroup != 0 || got2.LargestObj != 0 {
		t.Fatalf("got2 = %+v, want zero-valued content fields", got2)
	}
}

func TestSubscribeErrorRoundTrip(t *testing.T) {
	t.Parallel()
	want := SubscribeError{RequestID: 3, ErrorCode: 404, ReasonPhrase: "unknown track"}
	got, err := DecodeSubscribeError(EncodeSubscribeError(want))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got = %+v, want %+v", got, want)
	}
}

func TestUnsubscribeRoundTrip(t *testing.T) {
	t.Parallel()
	want := Unsubscribe{RequestID: 9}
	got, err := DecodeUnsubscribe(EncodeUnsubscribe(want))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got = %+v, want %+v", got, want)
	}
}

func TestMaxRequestIDRoundTrip(t *testing.T) {
	t.Parallel()
	want := MaxRequestIDMsg{RequestID: 500}
	got, err := DecodeMaxRequestID(EncodeMaxRequestID(want))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got = %+v, want %+v", got, want)
	}
}

func TestGoAwayRoundTrip(t *testing.T) {
	t.Parallel()
	want := GoAway{NewSessionURI: "https://example.test/session"}
	got, err := DecodeGoAway(EncodeGoAway(want))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got = %+v, want %+v", got, want)
	}
}

func TestEncodeMessageDispatchesEveryKind(t *testing.T) {
	t.Parallel()
	kinds := []Message{
		{Kind: KindClientSetup, ClientSetup: ClientSetup{Versions: []uint64{Version}}},
		{Kind: KindServerSetup, ServerSetup: ServerSetup{SelectedVersion: Version}},
		{Kind: KindSubscribe, Subscribe: Subscribe{Namespace: []string{"a"}, FilterType: FilterLatestObject}},
		{Kind: KindSubscribeOK, SubscribeOK: SubscribeOK{}},
		{Kind: KindSubscribeError, SubscribeError: SubscribeError{}},
		{Kind: KindUnsubscribe, Unsubscribe: Unsubscribe{}},
		{Kind: KindMaxRequestID, MaxRequestID: MaxRequestIDMsg{}},
		{Kind: KindGoAway, GoAway: GoAway{}},
	}
	for _, msg := range kinds {
		buf, err := EncodeMessage(msg)
		if err != nil {
			t.Fatalf("EncodeMessage(%v) = %v", msg.Kind, err)
		}
		if len(buf) == 0 {
			t.Fatalf("EncodeMessage(%v) produced no bytes", msg.Kind)
		}
	}
}

func TestEncodeMessageUnknownKind(t *testing.T) {
	t.Parallel()
	if _, err := EncodeMessage(Message{Kind: MessageKind(99)}); err == nil {
		t.Fatal("expected an error for an unknown Kind")
	}
}
