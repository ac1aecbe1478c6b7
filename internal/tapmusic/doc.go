// Package tapmusic knows the tapmusic.net collage endpoint: how to address
// it and how to read its answers.
//
// The package handles two concerns:
//
//  1. Building the collage URL from a validated model.CollageRequest
//  2. Recognizing the plain-text error pages the service returns instead of an image
//
// # Building Requests
//
// Use NewRequest to validate raw input and get both the URL and the
// destination path in one step:
//
//	req, err := tapmusic.NewRequest(input, tapmusic.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err) // *model.ValidationError
//	}
//	fmt.Println(req.URL)         // https://tapmusic.net/collage.php?user=alice&type=1month&size=4x4&caption=true
//	fmt.Println(req.Destination) // alice_1month_4x4_2024-05-01_134501.jpg
//
// # Service Errors
//
// tapmusic answers failures with HTTP 200 and a short text body. Use
// DetectServiceError on the response body before treating it as an image:
//
//	if err := tapmusic.DetectServiceError(body); err != nil {
//	    fmt.Println(err.(*tapmusic.ServiceError).Guidance())
//	}
package tapmusic
