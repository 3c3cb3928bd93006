package render

import (
	"net/url"
	"strings"
	"text/template"

	"github.com/Scalingo/sclng-profile-readme/model"
)

type Options struct {
	IconBaseURL  string
	StatsBaseURL string
	Theme        string
}

type icon struct {
	Name string
	URL  string
}

type readmeData struct {
	Account        string
	Icons          []icon
	TopLangsURL    string
	GithubStatsURL string
}

var readmeTemplate = template.Must(template.New("readme").Parse(`# 👋 Hi, I'm {{ .Account }}

## 💻 Tech Stack:
<p>
{{- range .Icons }}
  <img src="{{ .URL }}" alt="{{ .Name }}" width="36" style="margin:4px;" onerror="this.style.display='none'" />
{{- end }}
</p>

---

## 📊 GitHub Stats:
![Top Langs]({{ .TopLangsURL }})
![GitHub Stats]({{ .GithubStatsURL }})

---

*This README is automatically generated — updated weekly by a GitHub Action.*
`))

// Readme renders the profile document: top languages icons first, then topics icons
func Readme(profile model.Profile, opts Options) (string, error) {
	data := readmeData{
		Account:        profile.Account,
		Icons:          make([]icon, 0, len(profile.Languages)+len(profile.Topics)),
		TopLangsURL:    statsURL(opts, "/api/top-langs/", url.Values{"layout": {"compact"}}, profile.Account),
		GithubStatsURL: statsURL(opts, "/api", url.Values{"show_icons": {"true"}}, profile.Account),
	}

	for _, language := range profile.Languages {
		data.Icons = append(data.Icons, icon{Name: language.Name, URL: IconURL(opts.IconBaseURL, language.Name)})
	}

	for _, topic := range profile.Topics {
		data.Icons = append(data.Icons, icon{Name: topic, URL: IconURL(opts.IconBaseURL, topic)})
	}

	var b strings.Builder
	if err := readmeTemplate.Execute(&b, data); err != nil {
		return "", err
	}

	return b.String(), nil
}

// statsURL puts username first, remaining params are sorted
func statsURL(opts Options, path string, params url.Values, account string) string {
	params.Set("theme", opts.Theme)

	return strings.TrimSuffix(opts.StatsBaseURL, "/") + path + "?username=" + url.QueryEscape(account) + "&" + params.Encode()
}
