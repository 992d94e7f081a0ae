/*
Copyright © 2023 Alixinne <alixinne@pm.me>
*/
package main

import "sln-manifest/cmd"

func main() {
	cmd.Execute()
}
