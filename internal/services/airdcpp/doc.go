// Package airdcpp implements the AirDC++ Web API client used to resolve a
// release title to a downloadable file: session authorization, the
// three-phase search protocol (instance, hub search with extension-filter
// fallback, linear-backoff result polling), and download queueing.
package airdcpp
