// Package chat holds the conversation state and the send pipeline that drives
// one request/response turn at a time against the assistant service.
//
// A Conversation is the ordered message log rendered by the view. A Controller
// owns it: it validates input, appends the user message and a thinking
// placeholder, calls the transport, and replaces the placeholder in place with
// the assistant reply or a generic error message. At most one turn is pending at
// any time; submissions made while a turn is pending are ignored.
package chat
