package constvars

const (
	RegexEmail          = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	RegexDateYYYYMMDD   = `^\d{4}-\d{2}-\d{2}$`
	RegexBookingID      = `^[A-Z]+\d{6}$`
	RegexCardExpiryMMYY = `^(0[1-9]|1[0-2])\/\d{2}$`
	// RegexIndiaMobileNumber matches 10-digit mobile numbers with the
	// restricted leading-digit set used by Indian carriers.
	RegexIndiaMobileNumber = `^[6-9]\d{9}$`
	RegexUpiID             = `^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`
)
