// Package channel implements the delivery channels of the notification service.
//
// Every channel is a Sender returning an Outcome. Registry is the dispatch
// table keyed by notify.Type; a type without a registered sender is rejected
// permanently with "Unknown notification type: <type>".
//
//	reg := channel.NewRegistry().
//	    Register(notify.TypeEmail, channel.WithBreaker(email, channel.NewBreaker("email", cfg.Breaker))).
//	    Register(notify.TypeSMS, channel.WithBreaker(sms, channel.NewBreaker("sms", cfg.Breaker))).
//	    Register(notify.TypeInApp, channel.NewInAppSender(store, channel.WithPublisher(pub)))
//	sender := channel.WithTimeout(reg, cfg.SendTimeout)
//
// EmailSender (Postmark) and SMSSender (Twilio) only log in development mode.
// The SMS sender still fails fast for users without a phone number.
// InAppSender treats an identical notification already sent today as delivered
// and publishes new ones through RedisPublisher or MemoryPublisher.
//
// Failures are retryable unless Outcome.Permanent is set. Outcome.Err wraps one
// of notify.ErrValidation, notify.ErrTransport or notify.ErrPersistence.
package channel
