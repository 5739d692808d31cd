// Package api provides the HTTP adapter for the BizPilot backend.
//
// A single Client implements driven.PlanGenerator (POST /idea),
// driven.ChatClient (POST /idea/chatbot) and driven.AccountClient
// (/user/login, /user, /user/{id}). Responses are wrapped in the backend's
// {statusCode, data, message} envelope, except for chat replies, whose
// shape varies.
package api
