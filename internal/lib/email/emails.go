package email

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(to, firstName, username string) error {
	data := map[string]string{
		"UserFirstName": firstName,
		"Username":      username,
	}

	return c.SendEmail(
		to,
		"Welcome to Jobly!",
		TemplateWelcome,
		data,
	)
}
