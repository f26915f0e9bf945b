// Package notifications delivers run progress to a Discord webhook. When no
// webhook is configured every notification is a silent no-op, so callers
// never branch on notification availability.
package notifications
