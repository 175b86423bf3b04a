package notifier

// Notifier delivers operational notifications: new lead submissions and
// errors that deserve a human's attention.
type Notifier interface {
	Info(msg string)
	Error(err error)
}
