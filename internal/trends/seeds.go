package trends

// staticTrending is the last-resort query list used when both the API
// and the trending page are unavailable. Evergreen merch themes, not
// actual trends, so runs degrade instead of failing.
var staticTrending = []string{
	"funny cat shirt",
	"retro gaming tee",
	"plant mom gift",
	"fishing dad shirt",
	"vintage sunset graphic",
	"coffee lover mug",
	"dog mom hoodie",
	"mountain hiking tee",
	"space galaxy design",
	"sarcastic quote shirt",
}
