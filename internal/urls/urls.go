package urls

// Project URLs printed by the CLI

// Repository is the project home, including backend setup instructions
const Repository = "https://github.com/benedictjohannes/mpd-config-switcher"

// Issues is where bugs and backend incompatibilities are reported
const Issues = Repository + "/issues"
