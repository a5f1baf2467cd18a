// Package otpravka is a typed client for the Russian Post "otpravka" REST API:
// backlog orders, shipment batches, tariffs, address, name and phone
// normalization, batch documents and post office lookup.
//
// Every Client method validates its input locally, performs exactly one HTTP
// exchange and returns either the decoded result or an *APIError. The client
// keeps no mutable state and may be shared between goroutines.
//
//	client, err := otpravka.New(otpravka.Config{
//		AccessToken:       token,
//		UserAuthorization: otpravka.BasicUserAuthorization(login, password),
//	})
//	if err != nil {
//		return err
//	}
//	quote, err := client.CalculateTariff(ctx, otpravka.TariffRequest{
//		IndexFrom:    101000,
//		IndexTo:      190000,
//		MailCategory: otpravka.CategoryOrdinary,
//		MailType:     otpravka.MailPostalParcel,
//		Mass:         1000,
//	})
package otpravka
