package feed

// HasAccountUUID reports whether Session.GetAccountUUID will succeed.
func HasAccountUUID(session Session) bool {
	if session == nil {
		return false
	}
	_, err := session.GetAccountUUID()
	return err == nil
}
