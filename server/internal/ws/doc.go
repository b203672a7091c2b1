// Package ws streams survey catalog changes to WebSocket clients.
//
// Hub.ServeHTTP sends the current catalog on connect. Hub.Notify, called by
// the server after each successful survey reload, queues a broadcast that
// Hub.Run delivers to every client. Run closes all connections when its
// context is cancelled.
//
// Message format sent to clients:
//
//	{
//	  "event": "catalog",
//	  "data":  [ /* same schema as GET /api/v1/surveys */ ]
//	}
//
// The server mounts the hub at /api/v1/stream.
package ws
