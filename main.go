package main

import "github.com/LeeHanYeong/NWebtoon-Downloader/cmd"

func main() {
	cmd.Execute()
}
