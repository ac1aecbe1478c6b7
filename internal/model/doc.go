// Package model defines the collage request value and the parsing rules
// for its fields.
//
// # Collage Requests
//
// CollageRequest is built in one step from raw user input and is either
// complete or not built at all:
//
//	req, err := model.NewCollageRequest(model.Input{
//	    Username: "alice", Size: "4", Period: "1m",
//	    Caption: "t", Playcount: "f", Dir: "/tmp",
//	}, &model.RequestConfig{AllowOverall: true})
//	fmt.Println(req.Destination) // Where to save the collage
//
// # Field Parsing
//
// Each field has its own small parser that returns a *ValidationError for
// values outside the accepted set:
//
//	size, _ := model.ParseSize("4")            // model.Size4, Token() "4x4"
//	period, _ := model.ParsePeriod("1m", true) // model.PeriodMonth ("1month")
//	on, _ := model.ParseFlag("caption", "t")   // true
//
// Accepted values: size 3, 4, 5, 10; period 7d, 1m, 3m, 6m, 12m, all;
// flags t, f; custom files ending in .jpg, .jpeg or .png.
package model
