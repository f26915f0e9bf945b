// Command comicgrabr tracks a comic pull list and queues new releases for
// download through an AirDC++ Web API backend.
package main
