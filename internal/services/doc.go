// Package services holds the error taxonomy shared by backend clients and
// the acquisition pipeline.
package services
