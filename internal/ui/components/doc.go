// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the mcp dashboard.
//
// Components are plain render functions or small stateful views; none of them
// owns session state. The console model feeds them snapshots.
//
//   - ToastManager: rate-limited warning/error toasts
//   - StatusCards, RenderStatusRow: the five system status tiles
//   - ResourcePanel: allocation bars (bubbles/progress)
//   - RenderSecurity, RenderNetwork: security panel and network ring
//   - CommandReference, MarkdownRenderer: help rendered with glamour
//   - RenderSuggestions: suggestion chips under the input
//   - Highlighter: chroma-coloured JSON payloads
//   - Header: brand, session, recording state and clock
package components
