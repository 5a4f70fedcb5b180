// Package i3ipc is a client library for the i3/sway window manager IPC
// protocol: a framed request/reply transport over two UNIX stream
// sockets, a bespoke JSON codec tuned to the protocol's wire grammar,
// and the full set of query, command, and event-subscription
// operations the protocol exposes.
//
// A typical consumer dials a connection, runs some queries or
// commands, and then subscribes to events:
//
//	conn, err := i3ipc.Connect(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer conn.Close()
//
//	tree, err := conn.GetTree()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(tree.Root.Name)
//
//	if _, err := conn.Subscribe(i3ipc.EventTypeWindow); err != nil {
//		log.Fatal(err)
//	}
//	for {
//		ev, err := conn.EventNext(-1)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if ev != nil && ev.Type == i3ipc.EventTypeWindow {
//			fmt.Println(ev.Window.Change)
//		}
//	}
package i3ipc
