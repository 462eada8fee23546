package policy

// bannedTokens is the one process-wide table of placeholder markers. Every
// consumer goes through BannedTokens.
var bannedTokens = []string{
	"TODO",
	"FIXME",
	"XXX",
	"HACK",
	"NotImplementedError",
	"NotImplemented",
	"omitted for brevity",
	"rest of code",
	"left as an exercise",
	"implementation omitted",
}

// stubIdioms are incomplete-implementation idioms that are legal code in
// isolation. Generators are told to avoid them; the validator finds them
// structurally instead of by substring.
var stubIdioms = []string{
	"pass",
	"return null",
	"return None",
}

// BannedTokens returns a copy of the banned placeholder table.
func BannedTokens() []string {
	return append([]string(nil), bannedTokens...)
}

// StubIdioms returns a copy of the stub idiom table.
func StubIdioms() []string {
	return append([]string(nil), stubIdioms...)
}
