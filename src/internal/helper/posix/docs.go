// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix derives the command name shown in help text from the path
// the binary was started with, so usage lines match what the user typed on
// [POSIX] and Windows systems alike.
//
//	rootCmd := &cobra.Command{Use: posix.GetExecutableName()}
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
