// Package graphql provides a GraphQL client for APIs that authenticate
// with AWS Signature Version 4, such as AppSync with IAM authorization.
//
//	// create a client (safe to share across requests)
//	client := graphql.NewClient(graphql.Credentials{
//		AccessKeyID: id,
//		SecretKey:   secret,
//		Region:      "us-east-1",
//		Service:     "appsync",
//	})
//
//	// make a request
//	req := graphql.NewRequest("https://example.appsync-api.us-east-1.amazonaws.com/graphql", `
//		query ($key: String!) {
//			resource: item (id:$key) {
//				field1
//				field2
//			}
//		}
//	`)
//
//	// set any variables
//	req.Var("key", "value")
//
//	// run it and capture data.resource of the response
//	res, err := graphql.Fetch[Item](ctx, client, req)
//	if err != nil {
//		var fe *graphql.FetchError
//		errors.As(err, &fe)
//		log.Fatal(fe.Status, fe.Errors)
//	}
//
// # Specify client
//
// To specify your own http.Client, use the WithHTTPClient option:
//
//	httpclient := &http.Client{}
//	client := graphql.NewClient(creds, graphql.WithHTTPClient(httpclient))
package graphql
