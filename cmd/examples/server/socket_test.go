package server

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/uicontracts/pkg/contract"
)

// dialSession opens a page session and consumes the ready frame.
func dialSession(t *testing.T, addr string, app contract.App) *websocket.Conn {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws/"+string(app), nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })

	var ready Frame
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&ready))
	require.Equal(t, FrameReady, ready.Type)
	require.NotEmpty(t, ready.Session)
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, ev Event) Frame {
	t.Helper()

	require.NoError(t, conn.WriteJSON(ev))
	var f Frame
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func patchFor(t *testing.T, f Frame, selector string) Patch {
	t.Helper()
	for _, p := range f.Patches {
		if p.Selector == selector {
			return p
		}
	}
	t.Fatalf("no patch for %q in %+v", selector, f.Patches)
	return Patch{}
}

func TestSocket_Counter(t *testing.T) {
	_, addr := startTestServer(t)
	conn := dialSession(t, addr, contract.AppCounter)

	for want := 1; want <= 3; want++ {
		f := roundTrip(t, conn, Event{Type: "increment"})
		assert.Equal(t, FrameUpdate, f.Type)
		assert.Equal(t, want, f.Seq)
		p := patchFor(t, f, "#count")
		require.NotNil(t, p.Text)
		assert.Equal(t, strconv.Itoa(want), *p.Text)
	}
}

func TestSocket_SessionsAreIsolated(t *testing.T) {
	_, addr := startTestServer(t)
	a := dialSession(t, addr, contract.AppCounter)
	b := dialSession(t, addr, contract.AppCounter)

	roundTrip(t, a, Event{Type: "increment"})
	roundTrip(t, a, Event{Type: "increment"})
	f := roundTrip(t, b, Event{Type: "increment"})

	assert.Equal(t, "1", *patchFor(t, f, "#count").Text)
}

func TestSocket_Files(t *testing.T) {
	_, addr := startTestServer(t)
	conn := dialSession(t, addr, contract.AppFiles)

	f := roundTrip(t, conn, Event{Type: "select-files", Files: []string{"gren.json"}})
	assert.Equal(t, "[<gren.json>]", *patchFor(t, f, "#file-view").Text)
}

func TestSocket_FlightBookerArrivalBeforeDeparture(t *testing.T) {
	_, addr := startTestServer(t)
	conn := dialSession(t, addr, contract.AppFlightBooker)

	f := roundTrip(t, conn, Event{Type: "flight-type", Value: "Return flight"})
	assert.False(t, *patchFor(t, f, "#arrival").Disabled)
	assert.False(t, *patchFor(t, f, "#book").Disabled)

	roundTrip(t, conn, Event{Type: "departure", Value: "22.06.2022"})
	f = roundTrip(t, conn, Event{Type: "arrival", Value: "21.06.2022"})
	assert.True(t, *patchFor(t, f, "#book").Disabled)

	f = roundTrip(t, conn, Event{Type: "arrival", Value: "not a date"})
	assert.Equal(t, contract.InvalidDateStyle, *patchFor(t, f, "#arrival").Style)
	assert.Equal(t, "", *patchFor(t, f, "#departure").Style)

	f = roundTrip(t, conn, Event{Type: "flight-type", Value: "One-way flight"})
	assert.True(t, *patchFor(t, f, "#arrival").Disabled)
	assert.Equal(t, "", *patchFor(t, f, "#arrival").Style)
	assert.False(t, *patchFor(t, f, "#departure").Disabled)
	assert.False(t, *patchFor(t, f, "#book").Disabled)

	f = roundTrip(t, conn, Event{Type: "book"})
	assert.Equal(t, "You have booked a one-way flight on 22.06.2022.", *patchFor(t, f, "#booking-message").Text)
}

func TestSocket_FlightBookerRejectsUnknownType(t *testing.T) {
	_, addr := startTestServer(t)
	conn := dialSession(t, addr, contract.AppFlightBooker)

	f := roundTrip(t, conn, Event{Type: "flight-type", Value: "Multi-city"})
	assert.Equal(t, FrameError, f.Type)
	assert.Contains(t, f.Error, "Multi-city")
}

func TestSocket_TemperaturePatchesOnlyTheOtherField(t *testing.T) {
	_, addr := startTestServer(t)
	conn := dialSession(t, addr, contract.AppTemperatureConverter)

	f := roundTrip(t, conn, Event{Type: "celsius", Value: "20"})
	require.Len(t, f.Patches, 1)
	assert.Equal(t, "#fahrenheit", f.Patches[0].Selector)
	assert.Equal(t, "68", *f.Patches[0].Value)

	f = roundTrip(t, conn, Event{Type: "fahrenheit", Value: "41"})
	require.Len(t, f.Patches, 1)
	assert.Equal(t, "#celsius", f.Patches[0].Selector)
	assert.Equal(t, "5", *f.Patches[0].Value)

	f = roundTrip(t, conn, Event{Type: "fahrenheit", Value: "4x"})
	assert.Equal(t, FrameUpdate, f.Type)
	assert.Empty(t, f.Patches)
}

func TestSocket_TodoAddAndToggle(t *testing.T) {
	_, addr := startTestServer(t)
	conn := dialSession(t, addr, contract.AppTodoMVC)

	roundTrip(t, conn, Event{Type: "add", Value: "first task"})
	f := roundTrip(t, conn, Event{Type: "add", Value: "second task"})
	html := *patchFor(t, f, "ul.todo-list").HTML
	assert.Equal(t, 2, strings.Count(html, "<li"))
	assert.Less(t, strings.Index(html, "first task"), strings.Index(html, "second task"))
	assert.NotContains(t, html, "completed")
	assert.Equal(t, "2 items left", *patchFor(t, f, ".todo-count").Text)

	f = roundTrip(t, conn, Event{Type: "toggle", Index: 1})
	html = *patchFor(t, f, "ul.todo-list").HTML
	assert.Contains(t, html, `<li><input class="toggle" type="checkbox" data-delegate="toggle" data-index="0"><label>first task</label></li>`)
	assert.Contains(t, html, `<li class="completed"><input class="toggle" type="checkbox" data-delegate="toggle" data-index="1" checked><label>second task</label></li>`)
	assert.Equal(t, "1 item left", *patchFor(t, f, ".todo-count").Text)

	f = roundTrip(t, conn, Event{Type: "toggle", Index: 5})
	assert.Equal(t, FrameError, f.Type)
	assert.Contains(t, f.Error, contract.ErrNoSuchTodo.Error())
}

func TestSocket_TodoEscapesText(t *testing.T) {
	_, addr := startTestServer(t)
	conn := dialSession(t, addr, contract.AppTodoMVC)

	f := roundTrip(t, conn, Event{Type: "add", Value: "<b>bold</b>"})
	html := *patchFor(t, f, "ul.todo-list").HTML
	assert.Contains(t, html, "&lt;b&gt;bold&lt;/b&gt;")
	assert.NotContains(t, html, "<b>")
}

func TestSocket_BadEventsKeepSessionOpen(t *testing.T) {
	_, addr := startTestServer(t)
	conn := dialSession(t, addr, contract.AppCounter)

	f := roundTrip(t, conn, Event{Type: "decrement"})
	assert.Equal(t, FrameError, f.Type)
	assert.Contains(t, f.Error, "unknown event")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var bad Frame
	require.NoError(t, conn.ReadJSON(&bad))
	assert.Equal(t, FrameError, bad.Type)

	f = roundTrip(t, conn, Event{Type: "increment"})
	assert.Equal(t, FrameUpdate, f.Type)
	assert.Equal(t, 3, f.Seq)
	assert.Equal(t, "1", *patchFor(t, f, "#count").Text)
}

func TestSocket_HelloWorldHasNoEvents(t *testing.T) {
	_, addr := startTestServer(t)
	conn := dialSession(t, addr, contract.AppHelloWorld)

	f := roundTrip(t, conn, Event{Type: "click"})
	assert.Equal(t, FrameError, f.Type)
}

func TestSocket_UnknownApp(t *testing.T) {
	_, addr := startTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws/calculator", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSocket_Metrics(t *testing.T) {
	_, addr := startTestServer(t)
	conn := dialSession(t, addr, contract.AppCounter)
	roundTrip(t, conn, Event{Type: "increment"})
	roundTrip(t, conn, Event{Type: "bogus"})

	_, body := get(t, "http://"+addr+"/metrics")
	assert.Contains(t, body, `uicontracts_events_total{app="counter",type="increment"} 1`)
	assert.Contains(t, body, `uicontracts_events_total{app="counter",type="unknown"} 1`)
	assert.Contains(t, body, `uicontracts_event_errors_total{app="counter"} 1`)
	assert.Contains(t, body, `uicontracts_sessions_active{app="counter"} 1`)
}
