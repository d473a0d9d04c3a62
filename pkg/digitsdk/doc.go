/*
Package digitsdk is the client side of the digits HTTP API, plus the wire
types and error values the server writes.

A Client behaves like a browser session: it keeps cookies in a jar, fetches a
CSRF token on first use and posts form-encoded bodies.

	c, err := digitsdk.NewClient("http://localhost:8080")
	_, err = c.Login(ctx, "alice", "correct horse battery")

	shown, err := c.Start(ctx, "12345")
	time.Sleep(time.Duration(shown.CommitDelaySeconds) * time.Second)
	committed, err := c.Commit(ctx, shown.SignedPayload)

	challenge, err := c.RequestReveal(ctx, committed.EntryID)
	result, err := c.Verify(ctx, committed.EntryID, [3]string{"a", "B", "7"})

Failed calls return an *APIError. Compare with the predefined values:

	if errors.Is(err, digitsdk.ErrExpiredToken) {
		// start again
	}
*/
package digitsdk
