package utils

// SMSSender delivers a text message to a phone number. A returned error
// means the message was not delivered; callers decide whether that is
// fatal to the surrounding operation.
type SMSSender interface {
	Send(phoneNumber, message string) error
}

// LogSMSSender logs outgoing messages instead of delivering them. It
// stands in for the SMS gateway in development and tests.
type LogSMSSender struct{}

func (LogSMSSender) Send(phoneNumber, message string) error {
	GetLogger().Sugar().Infof("Sending SMS to %s: %s", phoneNumber, message)
	return nil
}

// MaskPhone hides all but the last four digits of a phone number.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return "*****" + phone[len(phone)-4:]
}
