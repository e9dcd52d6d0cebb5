// Package notify delivers the backup notification.
//
// Every backup pass announces itself with a transient notification before
// any repository operation runs. Delivery is strictly best-effort: a
// headless system without notify-send, a closed Notification Center, or an
// unreachable ntfy server never affects the backup itself.
package notify
