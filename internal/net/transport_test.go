package net

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SlideBoard/internal/export"
	"SlideBoard/internal/raster"
	"SlideBoard/internal/shape"
	"SlideBoard/internal/state"
)

const red = 0xFFFF0000

func startServer(t *testing.T) (*Server, *state.Shared, string) {
	t.Helper()
	shared := state.NewShared(state.New(state.DefaultOptions()))
	srv := NewServer(shared)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, shared, "ws" + strings.TrimPrefix(ts.URL, "http") + Path
}

func dial(t *testing.T, url string) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func call(t *testing.T, c *Client, cmd Command) Reply {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r, err := c.Call(ctx, cmd)
	require.NoError(t, err)
	require.True(t, r.OK)
	return r
}

func TestChangesReachOtherSessions(t *testing.T) {
	srv, shared, url := startServer(t)
	alice := dial(t, url)
	bob := dial(t, url)
	assert.NotEqual(t, alice.Session, bob.Session)
	assert.Eventually(t, func() bool { return srv.Peers().Len() == 2 }, time.Second, 10*time.Millisecond)

	r := call(t, alice, Command{Op: "add_rectangle", X: 0, Y: 0, W: 10, H: 10, Color: red})
	require.NotNil(t, r.UID)
	assert.Equal(t, state.UID(1), *r.UID)

	select {
	case ev := <-bob.Events():
		assert.Equal(t, TypeChanged, ev.Type)
		assert.Equal(t, alice.Session, ev.Session)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}

	r = call(t, bob, Command{Op: "pick", X: 5, Y: 5})
	assert.Equal(t, state.UID(1), *r.UID)

	r = call(t, bob, Command{Op: "color", UID: 1})
	assert.EqualValues(t, red, *r.Color)

	shared.Do(func(s *state.Scene) { assert.Equal(t, 1, s.Count()) })
}

func TestQueriesDoNotBroadcast(t *testing.T) {
	_, _, url := startServer(t)
	alice := dial(t, url)
	bob := dial(t, url)

	call(t, alice, Command{Op: "count"})
	call(t, alice, Command{Op: "selection"})
	select {
	case ev := <-bob.Events():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSharedSubscribersSeeRemoteChanges(t *testing.T) {
	_, shared, url := startServer(t)
	changed := make(chan struct{}, 4)
	shared.OnChange(func() { changed <- struct{}{} })

	c := dial(t, url)
	call(t, c, Command{Op: "add_ellipse", W: 4, H: 4, Color: red})
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber not notified")
	}
}

func TestUnknownOp(t *testing.T) {
	_, _, url := startServer(t)
	c := dial(t, url)

	r, err := c.Call(context.Background(), Command{Op: "explode"})
	require.ErrorIs(t, err, ErrRemote)
	assert.False(t, r.OK)
	assert.Contains(t, r.Error, `"explode"`)

	call(t, c, Command{Op: "count"})
}

func TestMalformedCommandKeepsSession(t *testing.T) {
	_, _, url := startServer(t)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello Event
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, TypeHello, hello.Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var r Reply
	require.NoError(t, conn.ReadJSON(&r))
	assert.False(t, r.OK)
	assert.True(t, strings.HasPrefix(r.Error, "net: bad command"))

	require.NoError(t, conn.WriteJSON(Command{ID: "c1", Op: "count"}))
	require.NoError(t, conn.ReadJSON(&r))
	assert.Equal(t, "c1", r.ID)
	assert.True(t, r.OK)
	assert.Equal(t, 0, *r.Count)
}

func TestDispatch(t *testing.T) {
	s := state.New(state.DefaultOptions())
	run := func(cmd Command) Reply {
		t.Helper()
		r, err := dispatch(s, cmd)
		require.NoError(t, err, cmd.Op)
		return r
	}

	img := run(Command{Op: "add_image", X: 10, Y: 10, W: 4, H: 4,
		Data: raster.PackARGB([]uint32{red, red, red, red}), ImageWidth: 2, ImageHeight: 2})
	line := run(Command{Op: "add_line", X: 0, Y: 0, X2: 20, Y2: 0, Color: red, Thickness: 2})

	r := run(Command{Op: "bounds", UID: *img.UID})
	assert.True(t, *r.Bool)
	assert.Equal(t, shape.Rect{X: 10, Y: 10, W: 4, H: 4}, *r.Rect)

	r = run(Command{Op: "bounds", UID: 99})
	assert.False(t, *r.Bool)
	assert.Nil(t, r.Rect)

	run(Command{Op: "select", UID: *img.UID})
	run(Command{Op: "select", UID: *line.UID, Additive: true})
	r = run(Command{Op: "selection"})
	assert.Equal(t, []state.UID{*img.UID, *line.UID}, r.Selection)
	r = run(Command{Op: "primary_selection"})
	assert.Equal(t, *line.UID, *r.UID)

	run(Command{Op: "move_selection", DX: 1, DY: 1})
	r = run(Command{Op: "bounds", UID: *img.UID})
	assert.Equal(t, shape.Rect{X: 11, Y: 11, W: 4, H: 4}, *r.Rect)

	r = run(Command{Op: "kind_at", Index: 1})
	assert.Equal(t, shape.KindLine, *r.Kind)

	r = run(Command{Op: "render", Width: 32, Height: 24})
	cfg, err := png.DecodeConfig(bytes.NewReader(r.Data))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 24, cfg.Height)

	snap := run(Command{Op: "snapshot"})
	run(Command{Op: "clear"})
	assert.Zero(t, s.Count())
	run(Command{Op: "load_snapshot", Data: snap.Data})
	assert.Equal(t, 2, s.Count())

	_, err = dispatch(s, Command{Op: "load_snapshot", Data: []byte("[]")})
	assert.Error(t, err)
	assert.Equal(t, 2, s.Count())
}

func TestDispatchRejects(t *testing.T) {
	s := state.New(state.DefaultOptions())
	uid := s.AddRectangle(10, 10, 20, 20, red)

	_, err := dispatch(s, Command{Op: "drag_handle", UID: uid, DX: 5, DY: 5})
	assert.ErrorIs(t, err, ErrMissingHandle)
	b, _ := s.Bounds(uid)
	assert.Equal(t, shape.Rect{X: 10, Y: 10, W: 20, H: 20}, b, "missing handle leaves the shape alone")

	h := state.HandleTopLeft
	_, err = dispatch(s, Command{Op: "drag_handle", UID: uid, Handle: &h, DX: 5, DY: 5})
	require.NoError(t, err)
	b, _ = s.Bounds(uid)
	assert.Equal(t, shape.Rect{X: 15, Y: 15, W: 15, H: 15}, b)

	_, err = dispatch(s, Command{Op: "render", Width: 1 << 20, Height: 1 << 20})
	assert.ErrorIs(t, err, export.ErrBadSize)
	_, err = dispatch(s, Command{Op: "thumbnail", Width: 1 << 20, Height: 10, MaxSide: 64})
	assert.ErrorIs(t, err, export.ErrBadSize)
}

func TestDragHandleJSON(t *testing.T) {
	var c Command
	require.NoError(t, json.Unmarshal([]byte(`{"op":"drag_handle","uid":1,"handle":0}`), &c))
	require.NotNil(t, c.Handle)
	assert.Equal(t, state.HandleTopLeft, *c.Handle)

	c = Command{}
	require.NoError(t, json.Unmarshal([]byte(`{"op":"drag_handle","uid":1}`), &c))
	assert.Nil(t, c.Handle)
}

func TestWebsocketURL(t *testing.T) {
	assert.Equal(t, "ws://192.168.1.4:8080/ws", WebsocketURL("192.168.1.4", 8080))
	assert.Equal(t, "ws://[::1]:9000/ws", WebsocketURL("::1", 9000))
}
