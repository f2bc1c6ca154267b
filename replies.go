package mochizuki

// Numeric reply codes from the standard IRC reply table (RFC 2812 section 5).
// Only the numerics this server actually emits are defined here.
const (
	RPL_WELCOME  = 1
	RPL_YOURHOST = 2
	RPL_CREATED  = 3
	RPL_MYINFO   = 4

	ERR_UNKNOWNCOMMAND   = 421
	ERR_NONICKNAMEGIVEN  = 431
	ERR_NEEDMOREPARAMS   = 461
	ERR_ALREADYREGISTRED = 462
)
