package i3ipc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommandSuccess(t *testing.T) {
	conn, peer := dialMockPeer(t, &Config{QuietPanic: true})

	done := make(chan struct {
		reply *ReplyCommand
		err   error
	}, 1)
	go func() {
		reply, err := conn.RunCommand("workspace 2")
		done <- struct {
			reply *ReplyCommand
			err   error
		}{reply, err}
	}()

	typ, payload, err := peer.ReceiveMessage()
	require.NoError(t, err)
	assert.Equal(t, int32(MessageRunCommand), typ)
	assert.Equal(t, "workspace 2", string(payload))
	require.NoError(t, peer.ReplyMessage(MessageRunCommand, []byte(`[{"success":true}]`)))

	result := <-done
	require.NoError(t, result.err)
	require.Len(t, result.reply.Results, 1)
	assert.True(t, result.reply.Results[0].Success)
}

func TestRunCommandSimpleFailureLatchesFailed(t *testing.T) {
	conn, peer := dialMockPeer(t, &Config{QuietPanic: true})

	done := make(chan error, 1)
	go func() {
		done <- conn.RunCommandSimple("nonsense")
	}()

	_, _, err := peer.ReceiveMessage()
	require.NoError(t, err)
	require.NoError(t, peer.ReplyMessage(MessageRunCommand, []byte(`[{"success":false,"error":"unknown command"}]`)))

	err = <-done
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeFailed))
	assert.Equal(t, ErrCodeFailed, conn.ErrorCode())
}

func TestGetVersion(t *testing.T) {
	conn, peer := dialMockPeer(t, &Config{QuietPanic: true})

	done := make(chan struct {
		reply *ReplyVersion
		err   error
	}, 1)
	go func() {
		reply, err := conn.GetVersion()
		done <- struct {
			reply *ReplyVersion
			err   error
		}{reply, err}
	}()

	typ, payload, err := peer.ReceiveMessage()
	require.NoError(t, err)
	assert.Equal(t, int32(MessageGetVersion), typ)
	assert.Empty(t, payload)
	require.NoError(t, peer.ReplyMessage(MessageGetVersion, []byte(
		`{"major":4,"minor":22,"patch":0,"human_readable":"4.22","loaded_config_file_name":"/etc/i3/config"}`)))

	result := <-done
	require.NoError(t, result.err)
	assert.Equal(t, 4, result.reply.Major)
	assert.Equal(t, 22, result.reply.Minor)
	assert.Equal(t, "/etc/i3/config", result.reply.LoadedConfigFileName)
}

func TestGetVersionSimple(t *testing.T) {
	conn, peer := dialMockPeer(t, &Config{QuietPanic: true})

	done := make(chan error, 1)
	var major, minor, patch int
	go func() {
		var err error
		major, minor, patch, err = conn.GetVersionSimple()
		done <- err
	}()

	_, _, err := peer.ReceiveMessage()
	require.NoError(t, err)
	require.NoError(t, peer.ReplyMessage(MessageGetVersion, []byte(
		`{"major":4,"minor":20,"patch":1,"human_readable":"4.20.1","loaded_config_file_name":""}`)))

	require.NoError(t, <-done)
	assert.Equal(t, 4, major)
	assert.Equal(t, 20, minor)
	assert.Equal(t, 1, patch)
}

func TestGetTreeNestedNodes(t *testing.T) {
	conn, peer := dialMockPeer(t, &Config{QuietPanic: true})

	done := make(chan struct {
		reply *ReplyTree
		err   error
	}, 1)
	go func() {
		reply, err := conn.GetTree()
		done <- struct {
			reply *ReplyTree
			err   error
		}{reply, err}
	}()

	typ, _, err := peer.ReceiveMessage()
	require.NoError(t, err)
	assert.Equal(t, int32(MessageGetTree), typ)
	require.NoError(t, peer.ReplyMessage(MessageGetTree, []byte(
		`{"id":1,"type":"root","border":"normal","layout":"splith","orientation":"horizontal",`+
			`"rect":{"x":0,"y":0,"width":1920,"height":1080},`+
			`"window_rect":{"x":0,"y":0,"width":0,"height":0},`+
			`"deco_rect":{"x":0,"y":0,"width":0,"height":0},`+
			`"geometry":{"x":0,"y":0,"width":0,"height":0},`+
			`"fullscreen_mode":0,"urgent":false,"focused":false,`+
			`"nodes":[`+
			`{"id":2,"type":"con","name":"Firefox","border":"normal","layout":"splith",`+
			`"orientation":"none","rect":{"x":0,"y":0,"width":960,"height":1080},`+
			`"window_rect":{"x":0,"y":0,"width":0,"height":0},`+
			`"deco_rect":{"x":0,"y":0,"width":0,"height":0},`+
			`"geometry":{"x":0,"y":0,"width":0,"height":0},`+
			`"fullscreen_mode":0,"urgent":false,"focused":true,"window":12345,`+
			`"window_properties":{"class":"Firefox","instance":"Navigator","title":"Mozilla Firefox"}},`+
			`{"id":3,"type":"con","name":"Save File","border":"normal","layout":"splith",`+
			`"orientation":"none","rect":{"x":0,"y":0,"width":480,"height":320},`+
			`"window_rect":{"x":0,"y":0,"width":0,"height":0},`+
			`"deco_rect":{"x":0,"y":0,"width":0,"height":0},`+
			`"geometry":{"x":0,"y":0,"width":0,"height":0},`+
			`"window_type":"dialog","fullscreen_mode":0,"urgent":false,"focused":false,"window":23456,`+
			`"window_properties":{"class":"Firefox","instance":"Navigator","title":"Save File",`+
			`"transient_for":12345}},`+
			`{"id":4,"type":"con","name":null,"border":"normal","layout":"splith",`+
			`"orientation":"none","rect":{"x":0,"y":0,"width":200,"height":100},`+
			`"window_rect":{"x":0,"y":0,"width":0,"height":0},`+
			`"deco_rect":{"x":0,"y":0,"width":0,"height":0},`+
			`"geometry":{"x":0,"y":0,"width":0,"height":0},`+
			`"fullscreen_mode":0,"urgent":false,"focused":false,"window":34567,`+
			`"window_properties":{"class":null,"instance":null,"title":null}}`+
			`]}`)))

	result := <-done
	require.NoError(t, result.err)
	assert.Equal(t, int64(1), result.reply.Root.ID)
	require.Len(t, result.reply.Root.Nodes, 3)

	firefox := result.reply.Root.Nodes[0]
	assert.Equal(t, "Firefox", firefox.Name)
	assert.True(t, firefox.Focused)
	require.NotNil(t, firefox.WindowProperties)
	assert.Equal(t, "Firefox", firefox.WindowProperties.WindowClass)
	assert.Equal(t, int64(12345), firefox.Window)
	assert.True(t, firefox.WindowSet)
	assert.False(t, firefox.WindowProperties.TransientForSet)

	dialog := result.reply.Root.Nodes[1]
	assert.Equal(t, "dialog", dialog.WindowType)
	assert.True(t, dialog.WindowTypeSet)
	require.NotNil(t, dialog.WindowProperties)
	assert.Equal(t, int64(12345), dialog.WindowProperties.TransientFor)
	assert.True(t, dialog.WindowProperties.TransientForSet)

	overrideRedirect := result.reply.Root.Nodes[2]
	require.NotNil(t, overrideRedirect.WindowProperties)
	assert.Empty(t, overrideRedirect.WindowProperties.WindowClass)
	assert.False(t, overrideRedirect.WindowProperties.WindowClassSet)
	assert.False(t, overrideRedirect.WindowProperties.InstanceSet)
	assert.False(t, overrideRedirect.WindowProperties.TitleSet)
}

func TestSubscribeAndEventNext(t *testing.T) {
	conn, peer := dialMockPeer(t, &Config{QuietPanic: true})

	subDone := make(chan error, 1)
	go func() {
		_, err := conn.Subscribe(EventTypeWindow)
		subDone <- err
	}()

	payload, err := peer.ReceiveSubscribe()
	require.NoError(t, err)
	assert.JSONEq(t, `["window"]`, string(payload))
	require.NoError(t, peer.ReplySubscribe(true))
	require.NoError(t, <-subDone)

	require.NoError(t, peer.PushEvent(EventWireWindow, []byte(
		`{"change":"new","container":{"id":42,"type":"con","name":"xterm"}}`)))

	ev, err := conn.EventNext(-1)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, EventTypeWindow, ev.Type)
	require.NotNil(t, ev.Window)
	assert.Equal(t, "new", ev.Window.Change)
	assert.Equal(t, "xterm", ev.Window.Container.Name)
}

func TestEventNextWithoutSubscribeIsBadState(t *testing.T) {
	conn, _ := dialMockPeer(t, &Config{QuietPanic: true})

	_, err := conn.EventNext(0)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeBadState))
}

func TestSyncBuildsRndWindowPayload(t *testing.T) {
	conn, peer := dialMockPeer(t, &Config{QuietPanic: true})

	done := make(chan error, 1)
	go func() {
		_, err := conn.Sync(7, 12345)
		done <- err
	}()

	typ, payload, err := peer.ReceiveMessage()
	require.NoError(t, err)
	assert.Equal(t, int32(MessageSync), typ)
	assert.JSONEq(t, `{"rnd":7,"window":12345}`, string(payload))
	require.NoError(t, peer.ReplyMessage(MessageSync, []byte(`{"success":true}`)))
	require.NoError(t, <-done)
}

func TestGetBarConfigIDsAndBarConfig(t *testing.T) {
	conn, peer := dialMockPeer(t, &Config{QuietPanic: true})

	done := make(chan struct {
		reply *ReplyBarConfigIDs
		err   error
	}, 1)
	go func() {
		reply, err := conn.GetBarConfigIDs()
		done <- struct {
			reply *ReplyBarConfigIDs
			err   error
		}{reply, err}
	}()
	_, _, err := peer.ReceiveMessage()
	require.NoError(t, err)
	require.NoError(t, peer.ReplyMessage(MessageGetBarConfig, []byte(`["bar-0"]`)))
	idsResult := <-done
	require.NoError(t, idsResult.err)
	require.Equal(t, []string{"bar-0"}, idsResult.reply.IDs)

	cfgDone := make(chan struct {
		reply *ReplyBarConfig
		err   error
	}, 1)
	go func() {
		reply, err := conn.GetBarConfig("bar-0")
		cfgDone <- struct {
			reply *ReplyBarConfig
			err   error
		}{reply, err}
	}()
	typ, payload, err := peer.ReceiveMessage()
	require.NoError(t, err)
	assert.Equal(t, int32(MessageGetBarConfig), typ)
	assert.Equal(t, "bar-0", string(payload))
	require.NoError(t, peer.ReplyMessage(MessageGetBarConfig, []byte(
		`{"id":"bar-0","mode":"dock","position":"bottom","font":"monospace",`+
			`"workspace_buttons":true,"binding_mode_indicator":true,"verbose":false,`+
			`"colors":{"background":"#000000","statusline":"#ffffff"}}`)))
	cfgResult := <-cfgDone
	require.NoError(t, cfgResult.err)
	assert.Equal(t, "dock", cfgResult.reply.Config.Mode)
	assert.Equal(t, "#000000", cfgResult.reply.Config.Colors.Background)
	assert.True(t, cfgResult.reply.Config.Colors.BackgroundSet)
	assert.False(t, cfgResult.reply.Config.Colors.SeparatorSet)
}

func TestMessageFDAndEventFD(t *testing.T) {
	conn, _ := dialMockPeer(t, &Config{QuietPanic: true})

	mfd, err := conn.MessageFD()
	require.NoError(t, err)
	assert.Greater(t, mfd, -1)

	efd, err := conn.EventFD()
	require.NoError(t, err)
	assert.Greater(t, efd, -1)
	assert.NotEqual(t, mfd, efd)
}
