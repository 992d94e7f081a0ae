package constants

const DEFAULT_API_URL = "https://api.github.com/"
const DEFAULT_USER_AGENT = "product/1"
const DEFAULT_SOURCE_OWNER = "DevExpress-Examples"
const DEFAULT_NAME_FILTER = "xamarin"
const DEFAULT_SOLUTION_PATTERN = `^CS/.*\.sln$`
const DEFAULT_MANIFEST_OWNER = "DevExpress"
const DEFAULT_MANIFEST_REPOSITORY = "native-mobile"
const DEFAULT_MANIFEST_PATH = ".teamcity/repos.json"
const DEFAULT_COMMIT_MESSAGE = "update repositories"
const TOKEN_ENV = "GITHUB_TOKEN"

// Examples that never build as standalone solutions.
var DEFAULT_EXCLUDED = []string{
	"t506284", "t294259", "t223734", "t279098", "t295653", "t297553", "t326911",
	"t499167", "t243160", "t221404", "t257726", "t178764", "t608114", "t208848",
}

type ContextKey int

const (
	DRY_RUN ContextKey = iota
)
