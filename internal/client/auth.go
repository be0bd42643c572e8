package client

import "net/http"

// Login exchanges the admin password for a session cookie, which the client
// keeps for later writes. A wrong password is ErrUnauthorized.
func (c *Client) Login(password string) error {
	req := struct {
		Password string `json:"password"`
	}{Password: password}
	return c.do(http.MethodPost, "/api/login", req, nil)
}

// Logout ends the session on the server. The cookie it clears is the one in
// this client's jar.
func (c *Client) Logout() error {
	return c.do(http.MethodPost, "/api/logout", nil, nil)
}

// LoggedIn asks the server whether the stored session is still live.
func (c *Client) LoggedIn() (bool, error) {
	var resp struct {
		LoggedIn bool `json:"logged_in"`
	}
	if err := c.do(http.MethodGet, "/api/auth/check", nil, &resp); err != nil {
		return false, err
	}
	return resp.LoggedIn, nil
}
