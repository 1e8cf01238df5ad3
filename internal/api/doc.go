// Package api serves the lesson flow over HTTP: a server-rendered HTML shell
// for browsers and a JSON API for other clients. Both translate requests into
// lesson.Manager and lesson.Session operations and map domain errors to
// status codes without leaking internal details.
package api
