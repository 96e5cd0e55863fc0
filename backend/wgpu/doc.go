// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides a GPU rendering backend built on wgpu/hal.
//
// Each frame is rendered offscreen into an RGBA8 target texture and read
// back over a fence; a host-supplied [Presenter] receives the pixels. The
// backend either opens its own Vulkan device or shares one supplied by the
// host through a device provider (e.g. a gogpu context):
//
//	wgpu.Register(wgpu.WithPresenter(p))
//	quad.Run("game", update)
//
// Unlike the headless backend this package does not register itself on
// import: constructing a GPU device is not free and the host usually wants
// to hand in its own. Call [Register] (or pass [New]'s result to
// quad.WithBackend) to opt in.
package wgpu
