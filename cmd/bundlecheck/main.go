// bundlecheck 发版前的 bundle 一致性检查工具
// 对照默认语言比较每个 locale 的 key 集合，并确认所有 problem 的
// title/detail 文案在每个 locale 下可解析；通常挂在 CI 里跑
//
//	go run ./cmd/bundlecheck -m bundles.toml -fail
package main

import (
	"flag"
	"fmt"
	"os"

	"msgsource-go/internal/apperrors"
	"msgsource-go/internal/i18n"
)

func main() {
	manifestPath := flag.String("m", "bundles.toml", "bundle manifest 路径")
	policy := flag.String("policy", "lenient", "miss policy（仅影响日志，不影响校验）")
	failOnError := flag.Bool("fail", false, "发现问题时以退出码 1 结束")
	flag.Parse()

	manifest, err := i18n.LoadManifest(*manifestPath)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	missPolicy, err := i18n.ParseMissPolicy(*policy)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	// 校验工具只看文件资源，数据库条目不参与发版检查
	catalog, _, err := manifest.BuildCatalog(missPolicy, true)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	if err := catalog.Preload(); err != nil {
		// 资源本身格式非法，直接失败
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	report, err := i18n.ValidateConsistency(catalog, apperrors.RequiredMessageKeys())
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	printReport(manifest, report)

	if *failOnError && !report.OK() {
		os.Exit(1)
	}
}

func printReport(manifest *i18n.Manifest, report *i18n.ConsistencyReport) {
	fmt.Println("=== BUNDLE CHECK RESULT ===")
	fmt.Println("Basenames:", manifest.Basenames)
	fmt.Println("Locales:", manifest.Locales)
	fmt.Println("Default locale:", manifest.DefaultLocale)
	fmt.Println()

	if report.OK() {
		fmt.Println("No issues found")
		return
	}

	fmt.Printf("Found %d issue(s):\n", len(report.Findings))
	for _, f := range report.Findings {
		fmt.Println("  -", f.String())
	}
}
