// Package environment describes the deployment mode of the notification service.
//
// The mode is read once from the ENVIRONMENT variable with Parse and decides
// whether the email and SMS senders reach real providers (Production, Staging)
// or only log what they would have sent (Development). Unknown values fall back
// to Development so a missing variable never triggers real sends.
//
// The value can also travel through context.Context with WithContext and
// FromContext, and LogAttr turns it into an "env" attribute for the
// logger package:
//
//	env := environment.Parse(os.Getenv("ENVIRONMENT"))
//	ctx := environment.WithContext(context.Background(), env)
//	log := logger.New(
//	    logger.WithEnvironment(env.String(), "notifyhub"),
//	    logger.WithContextExtractors(environment.LogAttr),
//	)
package environment
